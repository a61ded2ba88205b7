package entity

import "time"

// Doctor is a licensed practitioner with exactly one specialty.
type Doctor struct {
	Person
	appointmentList
	license   string
	specialty Specialty
}

func NewDoctor(firstName, lastName, dni string, birthDate time.Time, blood BloodType, license string, specialty Specialty) (*Doctor, error) {
	person, err := newPerson(firstName, lastName, dni, birthDate, blood)
	if err != nil {
		return nil, err
	}
	if license, err = validLicense(license); err != nil {
		return nil, err
	}
	if _, err = ParseSpecialty(string(specialty)); err != nil {
		return nil, err
	}
	return &Doctor{
		Person:    person,
		license:   license,
		specialty: specialty,
	}, nil
}

func (d *Doctor) License() string      { return d.license }
func (d *Doctor) Specialty() Specialty { return d.specialty }
