package entity

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// MedicalRecord is the clinical history attached to a patient. Entries are
// append-only; blank entries are silently dropped.
type MedicalRecord struct {
	patient   *Patient
	createdAt time.Time

	mu         sync.Mutex
	diagnoses  []string
	treatments []string
	allergies  []string
}

func newMedicalRecord(p *Patient) *MedicalRecord {
	return &MedicalRecord{
		patient:   p,
		createdAt: time.Now(),
	}
}

// Number derives the record identifier from the patient DNI and the year the
// record was opened, e.g. HC-12345678-2026.
func (r *MedicalRecord) Number() string {
	return fmt.Sprintf("HC-%s-%d", r.patient.DNI(), r.createdAt.Year())
}

func (r *MedicalRecord) CreatedAt() time.Time { return r.createdAt }

func (r *MedicalRecord) AddDiagnosis(diagnosis string) {
	r.append(&r.diagnoses, diagnosis)
}

func (r *MedicalRecord) AddTreatment(treatment string) {
	r.append(&r.treatments, treatment)
}

func (r *MedicalRecord) AddAllergy(allergy string) {
	r.append(&r.allergies, allergy)
}

func (r *MedicalRecord) Diagnoses() []string  { return r.snapshot(&r.diagnoses) }
func (r *MedicalRecord) Treatments() []string { return r.snapshot(&r.treatments) }
func (r *MedicalRecord) Allergies() []string  { return r.snapshot(&r.allergies) }

func (r *MedicalRecord) append(list *[]string, entry string) {
	if strings.TrimSpace(entry) == "" {
		return
	}
	r.mu.Lock()
	*list = append(*list, entry)
	r.mu.Unlock()
}

func (r *MedicalRecord) snapshot(list *[]string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(*list))
	copy(out, *list)
	return out
}
