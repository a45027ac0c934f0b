package usecase

import (
	"context"
	"iter"

	"patient-records/internal/delivery/dto"
	"patient-records/internal/domain/entity"
	"patient-records/internal/domain/repository"
	"patient-records/pkg/apperror"

	"github.com/sirupsen/logrus"
)

// DefaultShowLimit is used by show when no limit is given
const DefaultShowLimit = 10

type PatientUsecase interface {
	Create(ctx context.Context, req *dto.CreatePatientRequest) (*entity.Patient, error)
	Show(ctx context.Context, limit int) iter.Seq2[*entity.Patient, error]
	Count(ctx context.Context) (int64, error)
}

type patientUsecase struct {
	log         *logrus.Entry
	observer    entity.Observer
	patientRepo repository.PatientRepository
}

func NewPatientUsecase(log *logrus.Entry, observer entity.Observer, patientRepo repository.PatientRepository) PatientUsecase {
	return &patientUsecase{
		log:         log,
		observer:    observer,
		patientRepo: patientRepo,
	}
}

// Create validates the request into a Patient and persists it. Nothing is
// written when any field is invalid.
func (u *patientUsecase) Create(ctx context.Context, req *dto.CreatePatientRequest) (*entity.Patient, error) {
	patient, err := entity.Create(
		req.FirstName,
		req.LastName,
		req.BirthDate,
		req.Phone,
		req.DocumentType,
		req.DocumentNumber,
		entity.WithObserver(u.observer),
	)
	if err != nil {
		return nil, err
	}

	if err := u.patientRepo.Append(ctx, patient); err != nil {
		u.log.Warnf("Failed to save patient: %+v", err)
		return nil, err
	}

	return patient, nil
}

// Show yields at most limit stored patients.
func (u *patientUsecase) Show(ctx context.Context, limit int) iter.Seq2[*entity.Patient, error] {
	if limit < 0 {
		u.log.WithField("limit", limit).Error(apperror.ErrNegativeLimit.Error())
	}
	return u.patientRepo.Limit(ctx, limit)
}

func (u *patientUsecase) Count(ctx context.Context) (int64, error) {
	count, err := u.patientRepo.Count(ctx)
	if err != nil {
		u.log.Warnf("Failed to count patients: %+v", err)
		return 0, err
	}
	return count, nil
}
