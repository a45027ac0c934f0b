package repository

import (
	"io"
	"iter"
	"testing"

	"patient-records/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func testLog() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return logrus.NewEntry(log)
}

func testPatient(t *testing.T, firstName, documentID string) *entity.Patient {
	t.Helper()
	p, err := entity.Create(firstName, "Petrov", "1990-05-17", "89123456789", "passport", documentID)
	require.NoError(t, err)
	return p
}

// collect drains seq, stopping at the first error
func collect(seq iter.Seq2[*entity.Patient, error]) ([]string, error) {
	var out []string
	for p, err := range seq {
		if err != nil {
			return out, err
		}
		out = append(out, p.String())
	}
	return out, nil
}
