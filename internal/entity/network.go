package entity

import (
	"errors"
	"fmt"
	"sync"
)

var (
	ErrDuplicateEntity = errors.New("entity already registered")
	ErrEntityNotFound  = errors.New("entity not found")
)

// Network is the registry of a clinical network. Every mutable bidirectional
// link (hospital-department, hospital-patient, department-doctor,
// department-room) lives here as a pair of identity-keyed indexes updated
// under one mutex, so the two sides of a link cannot desynchronize. Entities
// themselves never point at each other except for a room's immutable owning
// department.
type Network struct {
	mu sync.RWMutex

	hospitals   map[string]*Hospital
	departments map[string]*Department
	doctors     map[string]*Doctor
	patients    map[string]*Patient
	rooms       map[string]*Room

	hospitalDepartments map[string][]string
	departmentHospital  map[string]string
	hospitalPatients    map[string][]string
	patientHospital     map[string]string
	departmentDoctors   map[string][]string
	doctorDepartment    map[string]string
	departmentRooms     map[string][]string
}

func NewNetwork() *Network {
	return &Network{
		hospitals:   make(map[string]*Hospital),
		departments: make(map[string]*Department),
		doctors:     make(map[string]*Doctor),
		patients:    make(map[string]*Patient),
		rooms:       make(map[string]*Room),

		hospitalDepartments: make(map[string][]string),
		departmentHospital:  make(map[string]string),
		hospitalPatients:    make(map[string][]string),
		patientHospital:     make(map[string]string),
		departmentDoctors:   make(map[string][]string),
		doctorDepartment:    make(map[string]string),
		departmentRooms:     make(map[string][]string),
	}
}

// Registration

func (n *Network) AddHospital(h *Hospital) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.hospitals[h.Name()]; ok {
		return fmt.Errorf("%w: hospital %s", ErrDuplicateEntity, h.Name())
	}
	n.hospitals[h.Name()] = h
	return nil
}

func (n *Network) AddDepartment(d *Department) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.departments[d.Name()]; ok {
		return fmt.Errorf("%w: department %s", ErrDuplicateEntity, d.Name())
	}
	n.departments[d.Name()] = d
	return nil
}

func (n *Network) AddDoctor(d *Doctor) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.doctors[d.DNI()]; ok {
		return fmt.Errorf("%w: doctor %s", ErrDuplicateEntity, d.DNI())
	}
	n.doctors[d.DNI()] = d
	return nil
}

func (n *Network) AddPatient(p *Patient) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.patients[p.DNI()]; ok {
		return fmt.Errorf("%w: patient %s", ErrDuplicateEntity, p.DNI())
	}
	n.patients[p.DNI()] = p
	return nil
}

// AddRoom registers a room and links it under its owning department, which
// must already be registered.
func (n *Network) AddRoom(r *Room) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.rooms[r.Number()]; ok {
		return fmt.Errorf("%w: room %s", ErrDuplicateEntity, r.Number())
	}
	dept := r.Department().Name()
	if _, ok := n.departments[dept]; !ok {
		return fmt.Errorf("%w: department %s", ErrEntityNotFound, dept)
	}
	n.rooms[r.Number()] = r
	n.departmentRooms[dept] = append(n.departmentRooms[dept], r.Number())
	return nil
}

// Links. Attaching a child that is already attached elsewhere moves it:
// the old link is removed and the new one installed in the same critical
// section.

func (n *Network) AttachDepartment(hospitalName, departmentName string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.hospitals[hospitalName]; !ok {
		return fmt.Errorf("%w: hospital %s", ErrEntityNotFound, hospitalName)
	}
	if _, ok := n.departments[departmentName]; !ok {
		return fmt.Errorf("%w: department %s", ErrEntityNotFound, departmentName)
	}
	n.attach(n.hospitalDepartments, n.departmentHospital, hospitalName, departmentName)
	return nil
}

func (n *Network) DetachDepartment(hospitalName, departmentName string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.detach(n.hospitalDepartments, n.departmentHospital, hospitalName, departmentName, "department")
}

func (n *Network) AttachPatient(hospitalName, dni string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.hospitals[hospitalName]; !ok {
		return fmt.Errorf("%w: hospital %s", ErrEntityNotFound, hospitalName)
	}
	if _, ok := n.patients[dni]; !ok {
		return fmt.Errorf("%w: patient %s", ErrEntityNotFound, dni)
	}
	n.attach(n.hospitalPatients, n.patientHospital, hospitalName, dni)
	return nil
}

func (n *Network) DetachPatient(hospitalName, dni string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.detach(n.hospitalPatients, n.patientHospital, hospitalName, dni, "patient")
}

func (n *Network) AttachDoctor(departmentName, dni string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	dept, ok := n.departments[departmentName]
	if !ok {
		return fmt.Errorf("%w: department %s", ErrEntityNotFound, departmentName)
	}
	doc, ok := n.doctors[dni]
	if !ok {
		return fmt.Errorf("%w: doctor %s", ErrEntityNotFound, dni)
	}
	if doc.Specialty() != dept.Specialty() {
		return fmt.Errorf("%w: doctor %s is %s, department %s is %s",
			ErrInvalidField, dni, doc.Specialty(), departmentName, dept.Specialty())
	}
	n.attach(n.departmentDoctors, n.doctorDepartment, departmentName, dni)
	return nil
}

func (n *Network) DetachDoctor(departmentName, dni string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.detach(n.departmentDoctors, n.doctorDepartment, departmentName, dni, "doctor")
}

// attach installs child under parent, removing any previous parent link.
func (n *Network) attach(children map[string][]string, parent map[string]string, parentKey, childKey string) {
	if prev, ok := parent[childKey]; ok {
		if prev == parentKey {
			return
		}
		children[prev] = remove(children[prev], childKey)
	}
	parent[childKey] = parentKey
	children[parentKey] = append(children[parentKey], childKey)
}

func (n *Network) detach(children map[string][]string, parent map[string]string, parentKey, childKey, kind string) error {
	if parent[childKey] != parentKey {
		return fmt.Errorf("%w: %s %s is not attached to %s", ErrEntityNotFound, kind, childKey, parentKey)
	}
	delete(parent, childKey)
	children[parentKey] = remove(children[parentKey], childKey)
	return nil
}

func remove(keys []string, key string) []string {
	for i, k := range keys {
		if k == key {
			return append(keys[:i], keys[i+1:]...)
		}
	}
	return keys
}

// Lookups

func (n *Network) Hospital(name string) (*Hospital, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	h, ok := n.hospitals[name]
	return h, ok
}

func (n *Network) Department(name string) (*Department, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	d, ok := n.departments[name]
	return d, ok
}

func (n *Network) DoctorByDNI(dni string) (*Doctor, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	d, ok := n.doctors[dni]
	return d, ok
}

func (n *Network) PatientByDNI(dni string) (*Patient, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	p, ok := n.patients[dni]
	return p, ok
}

func (n *Network) RoomByNumber(number string) (*Room, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	r, ok := n.rooms[number]
	return r, ok
}

// HospitalOf reports the hospital a department is attached to, if any.
func (n *Network) HospitalOf(departmentName string) (*Hospital, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	name, ok := n.departmentHospital[departmentName]
	if !ok {
		return nil, false
	}
	h, ok := n.hospitals[name]
	return h, ok
}

func (n *Network) DepartmentsOf(hospitalName string) []*Department {
	n.mu.RLock()
	defer n.mu.RUnlock()
	names := n.hospitalDepartments[hospitalName]
	out := make([]*Department, 0, len(names))
	for _, name := range names {
		out = append(out, n.departments[name])
	}
	return out
}

func (n *Network) PatientsOf(hospitalName string) []*Patient {
	n.mu.RLock()
	defer n.mu.RUnlock()
	dnis := n.hospitalPatients[hospitalName]
	out := make([]*Patient, 0, len(dnis))
	for _, dni := range dnis {
		out = append(out, n.patients[dni])
	}
	return out
}

func (n *Network) DoctorsOf(departmentName string) []*Doctor {
	n.mu.RLock()
	defer n.mu.RUnlock()
	dnis := n.departmentDoctors[departmentName]
	out := make([]*Doctor, 0, len(dnis))
	for _, dni := range dnis {
		out = append(out, n.doctors[dni])
	}
	return out
}

func (n *Network) RoomsOf(departmentName string) []*Room {
	n.mu.RLock()
	defer n.mu.RUnlock()
	numbers := n.departmentRooms[departmentName]
	out := make([]*Room, 0, len(numbers))
	for _, number := range numbers {
		out = append(out, n.rooms[number])
	}
	return out
}

func (n *Network) Hospitals() []*Hospital {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]*Hospital, 0, len(n.hospitals))
	for _, h := range n.hospitals {
		out = append(out, h)
	}
	return out
}

// Lookup tables for replaying a persisted appointment log; each is a
// snapshot copy keyed the same way the log refers to entities.

func (n *Network) PatientTable() map[string]*Patient {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make(map[string]*Patient, len(n.patients))
	for k, v := range n.patients {
		out[k] = v
	}
	return out
}

func (n *Network) DoctorTable() map[string]*Doctor {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make(map[string]*Doctor, len(n.doctors))
	for k, v := range n.doctors {
		out[k] = v
	}
	return out
}

func (n *Network) RoomTable() map[string]*Room {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make(map[string]*Room, len(n.rooms))
	for k, v := range n.rooms {
		out[k] = v
	}
	return out
}
