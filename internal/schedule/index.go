package schedule

import "sync"

// Store holds the primary appointment log and the three lookup indexes
// (by patient DNI, doctor DNI and room number). A commit appends to the log
// and to exactly one list per index under a single writer lock, so readers
// never observe an appointment in an index without it being in the log, or
// the other way around. Lists are insertion-ordered and the indexes share
// the log's Appointment instances; nothing is ever removed.
type Store struct {
	mu        sync.RWMutex
	log       []*Appointment
	byPatient map[string][]*Appointment
	byDoctor  map[string][]*Appointment
	byRoom    map[string][]*Appointment
}

func NewStore() *Store {
	s := &Store{}
	s.reset()
	return s
}

func (s *Store) reset() {
	s.log = nil
	s.byPatient = make(map[string][]*Appointment)
	s.byDoctor = make(map[string][]*Appointment)
	s.byRoom = make(map[string][]*Appointment)
}

// Commit installs an appointment in the log and all three indexes as one
// transactional update.
func (s *Store) Commit(a *Appointment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insert(a)
}

func (s *Store) insert(a *Appointment) {
	s.log = append(s.log, a)
	s.byPatient[a.Patient().DNI()] = append(s.byPatient[a.Patient().DNI()], a)
	s.byDoctor[a.Doctor().DNI()] = append(s.byDoctor[a.Doctor().DNI()], a)
	s.byRoom[a.Room().Number()] = append(s.byRoom[a.Room().Number()], a)
}

// Replace swaps the whole store content for the given log, rebuilding every
// index. Used by load so that either the complete new state or the complete
// old state is visible, never a mix.
func (s *Store) Replace(appts []*Appointment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	for _, a := range appts {
		s.insert(a)
	}
}

func (s *Store) ByPatient(dni string) []*Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot(s.byPatient[dni])
}

func (s *Store) ByDoctor(dni string) []*Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot(s.byDoctor[dni])
}

func (s *Store) ByRoom(number string) []*Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot(s.byRoom[number])
}

// All returns the primary log in commit order.
func (s *Store) All() []*Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot(s.log)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.log)
}

func snapshot(appts []*Appointment) []*Appointment {
	out := make([]*Appointment, len(appts))
	copy(out, appts)
	return out
}
