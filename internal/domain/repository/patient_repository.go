package repository

import (
	"context"
	"iter"

	"patient-records/internal/domain/entity"
)

// PatientRepository is the record store. Sequences are lazy, forward-only and
// in storage order. An absent or empty store yields an empty sequence.
type PatientRepository interface {
	Append(ctx context.Context, patient *entity.Patient) error
	Iterate(ctx context.Context) iter.Seq2[*entity.Patient, error]
	// Limit yields at most n patients from the start of the store.
	// A negative n yields apperror.ErrNegativeLimit.
	Limit(ctx context.Context, n int) iter.Seq2[*entity.Patient, error]
	Count(ctx context.Context) (int64, error)
	Close() error
}
