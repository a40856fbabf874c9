package history

import "time"

// Kind es el tag del documento de historial.
// @Enum prescription, exam, vaccine
type Kind string

const (
	KindPrescription Kind = "prescription"
	KindExam         Kind = "exam"
	KindVaccine      Kind = "vaccine"
)

// Prescription es el payload de una receta.
type Prescription struct {
	Medication   string
	Dosage       string
	Instructions string
}

// Exam es el payload de un examen.
type Exam struct {
	ExamType string
	Result   string
	Lab      string
}

// Vaccine es el payload de una vacuna aplicada.
// NextDue alimenta el recordatorio diario de vacunas.
type Vaccine struct {
	VaccineType string
	NextDue     *time.Time
	Batch       string
}
