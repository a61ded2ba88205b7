// Package fixture builds deterministic clinical networks for local runs,
// seeding and load simulation. The same seed always yields the same
// hospitals, departments, rooms, doctors and patients, so separate binaries
// can agree on entity identifiers without a shared datastore.
package fixture

import (
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/medgrid/clinic-appointment-scheduling/internal/entity"
)

type Params struct {
	Hospitals      int
	RoomsPerDept   int
	DoctorsPerDept int
	Patients       int
}

func DefaultParams() Params {
	return Params{
		Hospitals:      2,
		RoomsPerDept:   3,
		DoctorsPerDept: 4,
		Patients:       200,
	}
}

// BuildNetwork assembles a network: per hospital one department per
// specialty, each with rooms and doctors, plus patients spread across
// hospitals.
func BuildNetwork(seed uint64, p Params) (*entity.Network, error) {
	f := gofakeit.New(seed)
	network := entity.NewNetwork()

	usedDNIs := make(map[string]bool)
	bloodTypes := entity.BloodTypes()
	roomKinds := []string{"consultation", "examination", "procedure"}
	roomNumber := 100

	var hospitalNames []string
	for h := 0; h < p.Hospitals; h++ {
		name := fmt.Sprintf("%s General Hospital", f.City())
		for {
			if _, ok := network.Hospital(name); !ok {
				break
			}
			name = fmt.Sprintf("%s General Hospital", f.City())
		}
		hospital, err := entity.NewHospital(name, f.Address().Address, f.Phone())
		if err != nil {
			return nil, err
		}
		if err := network.AddHospital(hospital); err != nil {
			return nil, err
		}
		hospitalNames = append(hospitalNames, name)

		for _, spec := range entity.Specialties() {
			dept, err := entity.NewDepartment(departmentName(spec, name), spec)
			if err != nil {
				return nil, err
			}
			if err := network.AddDepartment(dept); err != nil {
				return nil, err
			}
			if err := network.AttachDepartment(name, dept.Name()); err != nil {
				return nil, err
			}

			for r := 0; r < p.RoomsPerDept; r++ {
				roomNumber++
				kind := roomKinds[f.Number(0, len(roomKinds)-1)]
				room, err := entity.NewRoom(fmt.Sprintf("%d", roomNumber), kind, dept)
				if err != nil {
					return nil, err
				}
				if err := network.AddRoom(room); err != nil {
					return nil, err
				}
			}

			for d := 0; d < p.DoctorsPerDept; d++ {
				doctor, err := entity.NewDoctor(
					f.FirstName(), f.LastName(), uniqueDNI(f, usedDNIs),
					birthDate(f), bloodTypes[f.Number(0, len(bloodTypes)-1)],
					f.Numerify("MP-#####"), spec,
				)
				if err != nil {
					return nil, err
				}
				if err := network.AddDoctor(doctor); err != nil {
					return nil, err
				}
				if err := network.AttachDoctor(dept.Name(), doctor.DNI()); err != nil {
					return nil, err
				}
			}
		}
	}

	for i := 0; i < p.Patients; i++ {
		patient, err := entity.NewPatient(
			f.FirstName(), f.LastName(), uniqueDNI(f, usedDNIs),
			birthDate(f), bloodTypes[f.Number(0, len(bloodTypes)-1)],
			f.Phone(), f.Address().Address,
		)
		if err != nil {
			return nil, err
		}
		if err := network.AddPatient(patient); err != nil {
			return nil, err
		}
		hospital := hospitalNames[f.Number(0, len(hospitalNames)-1)]
		if err := network.AttachPatient(hospital, patient.DNI()); err != nil {
			return nil, err
		}
	}

	return network, nil
}

func uniqueDNI(f *gofakeit.Faker, used map[string]bool) string {
	for {
		dni := f.Numerify("########")
		if !used[dni] {
			used[dni] = true
			return dni
		}
	}
}

func birthDate(f *gofakeit.Faker) time.Time {
	return f.DateRange(
		time.Date(1940, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2005, time.December, 31, 0, 0, 0, 0, time.UTC),
	)
}

// departmentName turns CARDIOLOGY into "Cardiology (St. Mary General Hospital)".
func departmentName(spec entity.Specialty, hospitalName string) string {
	words := strings.Split(strings.ToLower(string(spec)), "_")
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return fmt.Sprintf("%s (%s)", strings.Join(words, " "), hospitalName)
}
