package entity

// Department groups the rooms and doctors of one specialty. Its name is the
// identity used by the Network link indexes.
type Department struct {
	name      string
	specialty Specialty
}

func NewDepartment(name string, specialty Specialty) (*Department, error) {
	var err error
	if name, err = nonBlank(name, "department name"); err != nil {
		return nil, err
	}
	if _, err = ParseSpecialty(string(specialty)); err != nil {
		return nil, err
	}
	return &Department{name: name, specialty: specialty}, nil
}

func (d *Department) Name() string         { return d.name }
func (d *Department) Specialty() Specialty { return d.specialty }
