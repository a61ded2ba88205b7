package entity

import "fmt"

// Room belongs to exactly one department for its whole lifetime; the owning
// department decides which doctor specialties may be booked into it.
type Room struct {
	appointmentList
	number     string
	kind       string
	department *Department
}

func NewRoom(number, kind string, department *Department) (*Room, error) {
	var err error
	if number, err = nonBlank(number, "room number"); err != nil {
		return nil, err
	}
	if kind, err = nonBlank(kind, "room kind"); err != nil {
		return nil, err
	}
	if department == nil {
		return nil, fmt.Errorf("%w: room %s needs a department", ErrInvalidField, number)
	}
	return &Room{
		number:     number,
		kind:       kind,
		department: department,
	}, nil
}

func (r *Room) Number() string          { return r.number }
func (r *Room) Kind() string            { return r.kind }
func (r *Room) Department() *Department { return r.department }
