package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"os"

	"patient-records/internal/converter"
	"patient-records/internal/domain/entity"
	domainRepo "patient-records/internal/domain/repository"
	"patient-records/pkg/apperror"

	"github.com/sirupsen/logrus"
)

const fileDelimiter = '|'

type patientFileRepository struct {
	path    string
	log     *logrus.Entry
	options []entity.Option
}

// NewPatientFileRepository stores patients as '|' separated lines, without a
// header, in the file at path.
func NewPatientFileRepository(path string, log *logrus.Entry, opts ...entity.Option) domainRepo.PatientRepository {
	return &patientFileRepository{
		path:    path,
		log:     log,
		options: opts,
	}
}

func (r *patientFileRepository) Append(ctx context.Context, patient *entity.Patient) error {
	if err := ctx.Err(); err != nil {
		return r.fail("append", err)
	}

	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return r.fail("append", err)
	}

	w := csv.NewWriter(f)
	w.Comma = fileDelimiter
	if err := w.Write(converter.PatientToLine(patient)); err != nil {
		f.Close()
		return r.fail("append", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return r.fail("append", err)
	}
	if err := f.Close(); err != nil {
		return r.fail("append", err)
	}

	r.log.WithField("path", r.path).Info("Patient saved")
	return nil
}

func (r *patientFileRepository) Iterate(ctx context.Context) iter.Seq2[*entity.Patient, error] {
	return r.read(ctx, -1)
}

func (r *patientFileRepository) Limit(ctx context.Context, n int) iter.Seq2[*entity.Patient, error] {
	if n < 0 {
		return failed(apperror.ErrNegativeLimit)
	}
	if n == 0 {
		return empty
	}
	return r.read(ctx, n)
}

func (r *patientFileRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	for _, err := range r.lines(ctx) {
		if err != nil {
			return 0, err
		}
		count++
	}
	return count, nil
}

func (r *patientFileRepository) Close() error {
	return nil
}

// read restores patients line by line; n < 0 means no limit.
func (r *patientFileRepository) read(ctx context.Context, n int) iter.Seq2[*entity.Patient, error] {
	return func(yield func(*entity.Patient, error) bool) {
		produced := 0
		for line, err := range r.lines(ctx) {
			if err != nil {
				yield(nil, err)
				return
			}

			patient, err := entity.Restore(converter.LineToValues(line), r.options...)
			if err != nil {
				r.log.WithField("path", r.path).Error("Stored patient is corrupted")
				yield(nil, apperror.NewStorage("read", err))
				return
			}
			if !yield(patient, nil) {
				return
			}

			produced++
			if n > 0 && produced == n {
				return
			}
		}
	}
}

// lines yields the raw records of the file. A missing file has no lines.
func (r *patientFileRepository) lines(ctx context.Context) iter.Seq2[[]string, error] {
	return func(yield func([]string, error) bool) {
		f, err := os.Open(r.path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return
			}
			yield(nil, r.fail("read", err))
			return
		}
		defer f.Close()

		reader := csv.NewReader(f)
		reader.Comma = fileDelimiter
		reader.FieldsPerRecord = -1

		for {
			if err := ctx.Err(); err != nil {
				yield(nil, r.fail("read", err))
				return
			}

			line, err := reader.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(nil, r.fail("read", err))
				return
			}
			if len(line) != len(entity.FieldNames) {
				row, _ := reader.FieldPos(0)
				yield(nil, r.fail("read", fmt.Errorf("line %d: malformed record with %d fields", row, len(line))))
				return
			}
			if !yield(line, nil) {
				return
			}
		}
	}
}

func (r *patientFileRepository) fail(op string, err error) error {
	r.log.WithFields(logrus.Fields{
		"path":       r.path,
		"error_kind": "storage",
	}).Errorf("Error while working with patient file: %v", err)
	return apperror.NewStorage(op, err)
}
