package schedule

import (
	"bufio"
	"fmt"
	"os"
)

// Save writes the primary log to path, one CSV line per appointment, in
// commit order. The file handle is released on every exit path.
func (s *Scheduler) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save appointments: %w", err)
	}

	w := bufio.NewWriter(f)
	for _, a := range s.store.All() {
		if _, err := fmt.Fprintln(w, EncodeLine(a)); err != nil {
			f.Close()
			return fmt.Errorf("save appointments: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("save appointments: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("save appointments: %w", err)
	}
	return nil
}

// Load replaces the scheduler's state with the appointments decoded from
// path, resolving entity references against the supplied tables. The whole
// file is decoded before any state changes: on the first malformed line or
// unknown reference the previous log and indexes stay exactly as they were.
//
// Decoded lines are not re-validated against booking rules, and entity
// back-references are not rebuilt; the log and indexes alone are restored.
func (s *Scheduler) Load(path string, tables Lookup) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("load appointments: %w", err)
	}
	defer f.Close()

	var appts []*Appointment
	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		a, err := DecodeLine(sc.Text(), tables)
		if err != nil {
			return fmt.Errorf("load appointments: line %d: %w", lineNo, err)
		}
		appts = append(appts, a)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("load appointments: %w", err)
	}

	s.store.Replace(appts)
	return nil
}
