package entity

import "fmt"

// Specialty identifies a medical specialty. Doctors carry one and departments
// own one; the scheduler refuses to book a doctor into a room whose
// department specialty differs.
type Specialty string

const (
	Cardiology      Specialty = "CARDIOLOGY"
	Neurology       Specialty = "NEUROLOGY"
	Pediatrics      Specialty = "PEDIATRICS"
	Dermatology     Specialty = "DERMATOLOGY"
	Orthopedics     Specialty = "ORTHOPEDICS"
	Psychiatry      Specialty = "PSYCHIATRY"
	GeneralMedicine Specialty = "GENERAL_MEDICINE"
)

var allSpecialties = []Specialty{
	Cardiology,
	Neurology,
	Pediatrics,
	Dermatology,
	Orthopedics,
	Psychiatry,
	GeneralMedicine,
}

// Specialties returns the known specialties in a fixed order.
func Specialties() []Specialty {
	out := make([]Specialty, len(allSpecialties))
	copy(out, allSpecialties)
	return out
}

func ParseSpecialty(name string) (Specialty, error) {
	for _, s := range allSpecialties {
		if string(s) == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: unknown specialty %q", ErrInvalidField, name)
}
