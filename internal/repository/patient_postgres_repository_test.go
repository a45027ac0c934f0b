package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"patient-records/internal/domain/entity"
	"patient-records/internal/service"
	"patient-records/pkg/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var patientColumns = []string{"id", "first_name", "last_name", "birth_date", "phone", "document_type", "document_id"}

func setupMockDB(t *testing.T) (*sql.DB, *gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return sqlDB, db, mock
}

func setupPostgresRepo(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *patientPostgresRepository) {
	sqlDB, db, mock := setupMockDB(t)
	log := testLog()
	audit := service.NewAuditService(uuid.New(), log, NewAuditLogRepository())
	repo := NewPatientPostgresRepository(db, log, audit).(*patientPostgresRepository)
	return sqlDB, mock, repo
}

func TestPostgresAppend_Success(t *testing.T) {
	sqlDB, mock, repo := setupPostgresRepo(t)
	defer sqlDB.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "patients"`).
		WithArgs("Ivan", "Petrov", "1990-05-17", "+79123456789", "passport", "12 34 567890").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery(`INSERT INTO "audit_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Append(context.Background(), testPatient(t, "Ivan", "1234567890"))

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAppend_InsertFails(t *testing.T) {
	sqlDB, mock, repo := setupPostgresRepo(t)
	defer sqlDB.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "patients"`).
		WillReturnError(errors.New("connection refused"))
	mock.ExpectRollback()

	err := repo.Append(context.Background(), testPatient(t, "Ivan", "1234567890"))

	var se *apperror.StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "append", se.Op)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAppend_AuditFailureRollsBack(t *testing.T) {
	sqlDB, mock, repo := setupPostgresRepo(t)
	defer sqlDB.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "patients"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery(`INSERT INTO "audit_logs"`).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.Append(context.Background(), testPatient(t, "Ivan", "1234567890"))

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresIterate(t *testing.T) {
	sqlDB, mock, repo := setupPostgresRepo(t)
	defer sqlDB.Close()

	rows := sqlmock.NewRows(patientColumns).
		AddRow(1, "Ivan", "Petrov", "1990-05-17", "+79123456789", "passport", "12 34 567890").
		AddRow(2, "Anna", "Smirnova", "2001-12-01", "+79001112233", "international passport", "12 3456789")
	mock.ExpectQuery(`SELECT \* FROM "patients" ORDER BY id`).WillReturnRows(rows)

	got, err := collect(repo.Iterate(context.Background()))

	require.NoError(t, err)
	assert.Equal(t, []string{
		"Ivan Petrov 1990-05-17 +79123456789 passport 12 34 567890",
		"Anna Smirnova 2001-12-01 +79001112233 international passport 12 3456789",
	}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresLimit(t *testing.T) {
	sqlDB, mock, repo := setupPostgresRepo(t)
	defer sqlDB.Close()

	rows := sqlmock.NewRows(patientColumns).
		AddRow(1, "Ivan", "Petrov", "1990-05-17", "+79123456789", "passport", "12 34 567890")
	mock.ExpectQuery(`SELECT \* FROM "patients" ORDER BY id LIMIT`).WillReturnRows(rows)

	got, err := collect(repo.Limit(context.Background(), 1))

	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresLimit_ZeroAndNegative(t *testing.T) {
	sqlDB, mock, repo := setupPostgresRepo(t)
	defer sqlDB.Close()

	got, err := collect(repo.Limit(context.Background(), 0))
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = collect(repo.Limit(context.Background(), -3))
	assert.ErrorIs(t, err, apperror.ErrNegativeLimit)

	// neither touches the database
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresIterate_MissingTable(t *testing.T) {
	sqlDB, mock, repo := setupPostgresRepo(t)
	defer sqlDB.Close()

	mock.ExpectQuery(`SELECT \* FROM "patients"`).
		WillReturnError(&pgconn.PgError{Code: pgUndefinedTable, Message: `relation "patients" does not exist`})
	mock.ExpectQuery(`SELECT count\(\*\) FROM "patients"`).
		WillReturnError(&pgconn.PgError{Code: pgUndefinedTable})

	got, err := collect(repo.Limit(context.Background(), 10))
	require.NoError(t, err)
	assert.Empty(t, got)

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresIterate_CorruptedRow(t *testing.T) {
	sqlDB, mock, repo := setupPostgresRepo(t)
	defer sqlDB.Close()

	rows := sqlmock.NewRows(patientColumns).
		AddRow(1, "Ivan", "Petrov", "1990-05-17", "+79123456789", "passport", "12 3456789")
	mock.ExpectQuery(`SELECT \* FROM "patients"`).WillReturnRows(rows)

	_, err := collect(repo.Iterate(context.Background()))

	var se *apperror.StorageError
	require.ErrorAs(t, err, &se)
	var ve *apperror.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, entity.FieldDocumentID, ve.Field)
}

func TestPostgresIterate_QueryFails(t *testing.T) {
	sqlDB, mock, repo := setupPostgresRepo(t)
	defer sqlDB.Close()

	mock.ExpectQuery(`SELECT \* FROM "patients"`).WillReturnError(errors.New("connection reset"))

	_, err := collect(repo.Iterate(context.Background()))

	var se *apperror.StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "read", se.Op)
}

func TestPostgresCount(t *testing.T) {
	sqlDB, mock, repo := setupPostgresRepo(t)
	defer sqlDB.Close()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "patients"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.Count(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
