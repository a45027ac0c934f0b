package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"patient-records/internal/delivery/cli/handler"
	"patient-records/internal/delivery/dto"
	"patient-records/internal/repository"
	"patient-records/internal/usecase"
	"patient-records/pkg/validator"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, storePath string, args ...string) (string, error) {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)
	entry := logrus.NewEntry(log)

	repo := repository.NewPatientFileRepository(storePath, entry)
	patientHandler := handler.NewPatientHandler(usecase.NewPatientUsecase(entry, nil, repo), validator.NewValidator())
	root := NewRouter(patientHandler).Setup()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func createIvan(t *testing.T, storePath string) {
	t.Helper()
	out, err := run(t, storePath, "create", "ivan", "petrov",
		"--birth-date", "1990/05/17",
		"--phone", "8 (912) 345-67-89",
		"--document-type", "passport",
		"-n", "12", "-n", "34", "-n", "567890")
	require.NoError(t, err)
	assert.Equal(t, "Patient added\n", out)
}

func TestCreateShowCount(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "patients.txt")
	createIvan(t, storePath)

	out, err := run(t, storePath, "create", "Anna", "Smirnova",
		"-b", "2001-12-01", "-p", "79001112233",
		"-t", "international", "-t", "passport",
		"-n", "12 3456789")
	require.NoError(t, err)
	assert.Equal(t, "Patient added\n", out)

	out, err = run(t, storePath, "show")
	require.NoError(t, err)
	assert.Equal(t,
		"Ivan Petrov 1990-05-17 +79123456789 passport 12 34 567890\n"+
			"Anna Smirnova 2001-12-01 +79001112233 international passport 12 3456789\n",
		out)

	out, err = run(t, storePath, "show", "1")
	require.NoError(t, err)
	assert.Equal(t, "Ivan Petrov 1990-05-17 +79123456789 passport 12 34 567890\n", out)

	out, err = run(t, storePath, "show", "0")
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = run(t, storePath, "count")
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)
}

func TestShowJSON(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "patients.txt")
	createIvan(t, storePath)

	out, err := run(t, storePath, "show", "--json")
	require.NoError(t, err)

	var resp dto.PatientResponse
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &resp))
	assert.Equal(t, "Ivan", resp.FirstName)
	assert.Equal(t, "12 34 567890", resp.DocumentID)
}

func TestCreate_MissingArguments(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "patients.txt")

	_, err := run(t, storePath, "create", "Ivan", "Petrov", "-b", "1990-05-17", "-t", "passport", "-n", "1234567890")
	require.Error(t, err)
	assert.Equal(t, "phone is required", err.Error())

	_, err = run(t, storePath, "create", "Ivan")
	assert.Error(t, err)

	out, err := run(t, storePath, "count")
	require.NoError(t, err)
	assert.Equal(t, "0\n", out)
}

func TestCreate_InvalidField(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "patients.txt")

	_, err := run(t, storePath, "create", "Ivan", "Petrov", "-b", "1990-05-17", "-p", "123", "-t", "passport", "-n", "1234567890")
	require.Error(t, err)
	assert.Equal(t, "phone: Incorrect phone number length", err.Error())

	_, err = run(t, storePath, "create", "Ivan2", "Petrov", "-b", "1990-05-17", "-p", "89123456789", "-t", "passport", "-n", "1234567890")
	require.Error(t, err)
	assert.Equal(t, "first_name: Name or surname contains invalid characters", err.Error())

	out, err := run(t, storePath, "count")
	require.NoError(t, err)
	assert.Equal(t, "0\n", out)
}

func TestShow_InvalidLimit(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "patients.txt")

	_, err := run(t, storePath, "show", "-1")
	assert.ErrorIs(t, err, handler.ErrInvalidLimit)

	_, err = run(t, storePath, "show", "-25")
	assert.ErrorIs(t, err, handler.ErrInvalidLimit)

	_, err = run(t, storePath, "show", "--", "-1")
	assert.ErrorIs(t, err, handler.ErrInvalidLimit)

	_, err = run(t, storePath, "show", "-x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, handler.ErrInvalidLimit)

	_, err = run(t, storePath, "show", "ten")
	assert.ErrorIs(t, err, handler.ErrInvalidLimit)
}

func TestShow_EmptyStore(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "patients.txt")

	out, err := run(t, storePath, "show", "5")
	require.NoError(t, err)
	assert.Empty(t, out)
}
