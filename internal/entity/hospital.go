package entity

// Hospital is a site in the clinical network, identified by name.
type Hospital struct {
	name    string
	address string
	phone   string
}

func NewHospital(name, address, phone string) (*Hospital, error) {
	var err error
	if name, err = nonBlank(name, "hospital name"); err != nil {
		return nil, err
	}
	if address, err = nonBlank(address, "hospital address"); err != nil {
		return nil, err
	}
	if phone, err = nonBlank(phone, "hospital phone"); err != nil {
		return nil, err
	}
	return &Hospital{name: name, address: address, phone: phone}, nil
}

func (h *Hospital) Name() string    { return h.name }
func (h *Hospital) Address() string { return h.address }
func (h *Hospital) Phone() string   { return h.phone }
