package entity

import (
	"fmt"
	"time"
)

type BloodType string

const (
	APositive  BloodType = "A+"
	ANegative  BloodType = "A-"
	BPositive  BloodType = "B+"
	BNegative  BloodType = "B-"
	ABPositive BloodType = "AB+"
	ABNegative BloodType = "AB-"
	OPositive  BloodType = "O+"
	ONegative  BloodType = "O-"
)

var allBloodTypes = []BloodType{
	APositive, ANegative,
	BPositive, BNegative,
	ABPositive, ABNegative,
	OPositive, ONegative,
}

// BloodTypes returns the known blood types in a fixed order.
func BloodTypes() []BloodType {
	out := make([]BloodType, len(allBloodTypes))
	copy(out, allBloodTypes)
	return out
}

func ParseBloodType(s string) (BloodType, error) {
	for _, bt := range allBloodTypes {
		if string(bt) == s {
			return bt, nil
		}
	}
	return "", fmt.Errorf("%w: unknown blood type %q", ErrInvalidField, s)
}

// Person carries the identity fields shared by patients and doctors. The DNI
// is the stable identity used for equality and as a map key everywhere else,
// so it is immutable after construction.
type Person struct {
	firstName string
	lastName  string
	dni       string
	birthDate time.Time
	bloodType BloodType
}

func newPerson(firstName, lastName, dni string, birthDate time.Time, blood BloodType) (Person, error) {
	var err error
	if firstName, err = nonBlank(firstName, "first name"); err != nil {
		return Person{}, err
	}
	if lastName, err = nonBlank(lastName, "last name"); err != nil {
		return Person{}, err
	}
	if dni, err = validDNI(dni); err != nil {
		return Person{}, err
	}
	if birthDate.IsZero() {
		return Person{}, fmt.Errorf("%w: birth date is required", ErrInvalidField)
	}
	return Person{
		firstName: firstName,
		lastName:  lastName,
		dni:       dni,
		birthDate: birthDate,
		bloodType: blood,
	}, nil
}

func (p Person) FirstName() string    { return p.firstName }
func (p Person) LastName() string     { return p.lastName }
func (p Person) DNI() string          { return p.dni }
func (p Person) BirthDate() time.Time { return p.birthDate }
func (p Person) BloodType() BloodType { return p.bloodType }

func (p Person) FullName() string {
	return p.firstName + " " + p.lastName
}

// Age is the number of completed years since the birth date.
func (p Person) Age() int {
	now := time.Now()
	years := now.Year() - p.birthDate.Year()
	anniversary := p.birthDate.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}
