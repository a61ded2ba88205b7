package entity

import "time"

// Patient is a person receiving care. A fresh medical record is opened when
// the patient is created.
type Patient struct {
	Person
	appointmentList
	phone   string
	address string
	record  *MedicalRecord
}

func NewPatient(firstName, lastName, dni string, birthDate time.Time, blood BloodType, phone, address string) (*Patient, error) {
	person, err := newPerson(firstName, lastName, dni, birthDate, blood)
	if err != nil {
		return nil, err
	}
	if phone, err = nonBlank(phone, "phone"); err != nil {
		return nil, err
	}
	if address, err = nonBlank(address, "address"); err != nil {
		return nil, err
	}
	p := &Patient{
		Person:  person,
		phone:   phone,
		address: address,
	}
	p.record = newMedicalRecord(p)
	return p, nil
}

func (p *Patient) Phone() string          { return p.phone }
func (p *Patient) Address() string        { return p.address }
func (p *Patient) Record() *MedicalRecord { return p.record }
