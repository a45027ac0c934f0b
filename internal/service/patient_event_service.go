package service

import (
	"patient-records/internal/domain/entity"
	"patient-records/pkg/apperror"

	"github.com/sirupsen/logrus"
)

// PatientEventLogger reports patient field changes and failures to the log.
type PatientEventLogger struct {
	log *logrus.Entry
}

func NewPatientEventLogger(log *logrus.Entry) *PatientEventLogger {
	return &PatientEventLogger{log: log}
}

var _ entity.Observer = (*PatientEventLogger)(nil)

func (l *PatientEventLogger) PatientCreated(p *entity.Patient) {
	l.log.WithField("patient", p.String()).Info("Patient added")
}

func (l *PatientEventLogger) FieldChanged(field string, created bool) {
	if created {
		l.log.WithField("field", field).Debug("Field set")
		return
	}
	l.log.WithField("field", field).Infof("Field %s were updated", field)
}

func (l *PatientEventLogger) FieldDeleted(field string) {
	l.log.WithField("field", field).Infof("Field %s were deleted", field)
}

func (l *PatientEventLogger) FieldFailed(field string, err error) {
	l.log.WithFields(logrus.Fields{
		"field":      field,
		"error_kind": apperror.Kind(err),
	}).Error(err.Error())
}
