package repository

import (
	"context"
	"errors"
	"iter"
	"strconv"

	"patient-records/internal/converter"
	"patient-records/internal/domain/entity"
	domainRepo "patient-records/internal/domain/repository"
	"patient-records/internal/service"
	"patient-records/pkg/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PostgreSQL error code 42P01 = undefined_table
const pgUndefinedTable = "42P01"

type patientPostgresRepository struct {
	db           *gorm.DB
	log          *logrus.Entry
	auditService service.AuditService
	options      []entity.Option
}

// NewPatientPostgresRepository stores patients in the patients table. Each
// append also writes an audit log row in the same transaction.
func NewPatientPostgresRepository(db *gorm.DB, log *logrus.Entry, auditService service.AuditService, opts ...entity.Option) domainRepo.PatientRepository {
	return &patientPostgresRepository{
		db:           db,
		log:          log,
		auditService: auditService,
		options:      opts,
	}
}

func (r *patientPostgresRepository) Append(ctx context.Context, patient *entity.Patient) error {
	record := converter.PatientToRecord(patient)

	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return r.fail("append", tx.Error)
	}
	defer tx.Rollback()

	if err := tx.Create(record).Error; err != nil {
		return r.fail("append", err)
	}

	if r.auditService != nil {
		id := strconv.FormatInt(record.ID, 10)
		if err := r.auditService.LogCreate(ctx, tx, entity.AuditActionPatientCreate, record.TableName(), id, patient.String()); err != nil {
			return r.fail("append", err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return r.fail("append", err)
	}

	r.log.WithField("patient_id", record.ID).Info("Patient saved")
	return nil
}

func (r *patientPostgresRepository) Iterate(ctx context.Context) iter.Seq2[*entity.Patient, error] {
	return r.scan(ctx, -1)
}

func (r *patientPostgresRepository) Limit(ctx context.Context, n int) iter.Seq2[*entity.Patient, error] {
	if n < 0 {
		return failed(apperror.ErrNegativeLimit)
	}
	if n == 0 {
		return empty
	}
	return r.scan(ctx, n)
}

func (r *patientPostgresRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.PatientRecord{}).Count(&count).Error
	if err != nil {
		if isUndefinedTable(err) {
			return 0, nil
		}
		return 0, r.fail("count", err)
	}
	return count, nil
}

func (r *patientPostgresRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// scan streams rows through a cursor; n < 0 means no limit.
func (r *patientPostgresRepository) scan(ctx context.Context, n int) iter.Seq2[*entity.Patient, error] {
	return func(yield func(*entity.Patient, error) bool) {
		query := r.db.WithContext(ctx).Model(&entity.PatientRecord{}).Order("id")
		if n > 0 {
			query = query.Limit(n)
		}

		rows, err := query.Rows()
		if err != nil {
			if isUndefinedTable(err) {
				return
			}
			yield(nil, r.fail("read", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var record entity.PatientRecord
			if err := r.db.ScanRows(rows, &record); err != nil {
				yield(nil, r.fail("read", err))
				return
			}

			patient, err := entity.Restore(converter.RecordToValues(&record), r.options...)
			if err != nil {
				r.log.WithField("patient_id", record.ID).Error("Stored patient is corrupted")
				yield(nil, apperror.NewStorage("read", err))
				return
			}
			if !yield(patient, nil) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			yield(nil, r.fail("read", err))
		}
	}
}

func (r *patientPostgresRepository) fail(op string, err error) error {
	r.log.WithField("error_kind", "storage").Errorf("Error while working with database: %v", err)
	return apperror.NewStorage(op, err)
}

func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUndefinedTable
}
