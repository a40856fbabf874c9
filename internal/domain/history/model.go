package history

import (
	"errors"
	"time"
)

var ErrMalformedItem = errors.New("history item: kind/payload mismatch")

// Item es un documento del historial médico: union etiquetada sobre
// {Prescription, Exam, Vaccine}. Los campos comunes viven acá; exactamente
// un payload de variante es no-nil y coincide con Kind.
//
// Key es la clave local del cache (la genera el cliente al guardar, el
// historial remoto no trae una clave única entre variantes). ID es el id
// del documento en el servidor, único solo dentro de su variante.
type Item struct {
	Key string

	ID       int64
	AnimalID int64

	Kind Kind
	Name string
	Date time.Time

	Prescription *Prescription
	Exam         *Exam
	Vaccine      *Vaccine
}

// Validate verifica que Kind y payload sean coherentes.
func (i Item) Validate() error {
	switch i.Kind {
	case KindPrescription:
		if i.Prescription == nil || i.Exam != nil || i.Vaccine != nil {
			return ErrMalformedItem
		}
	case KindExam:
		if i.Exam == nil || i.Prescription != nil || i.Vaccine != nil {
			return ErrMalformedItem
		}
	case KindVaccine:
		if i.Vaccine == nil || i.Prescription != nil || i.Exam != nil {
			return ErrMalformedItem
		}
	default:
		return ErrMalformedItem
	}
	return nil
}
