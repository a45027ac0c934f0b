package repository

import (
	"iter"

	"patient-records/internal/domain/entity"
)

func empty(func(*entity.Patient, error) bool) {}

func failed(err error) iter.Seq2[*entity.Patient, error] {
	return func(yield func(*entity.Patient, error) bool) {
		yield(nil, err)
	}
}
