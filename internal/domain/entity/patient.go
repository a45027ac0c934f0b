package entity

import (
	"errors"
	"fmt"
	"strings"

	"patient-records/pkg/apperror"
	"patient-records/pkg/validator"
)

// Field names, also used as storage column names.
const (
	FieldFirstName    = "first_name"
	FieldLastName     = "last_name"
	FieldBirthDate    = "birth_date"
	FieldPhone        = "phone"
	FieldDocumentType = "document_type"
	FieldDocumentID   = "document_id"
)

// FieldNames lists the patient fields in assignment and rendering order.
var FieldNames = []string{
	FieldFirstName,
	FieldLastName,
	FieldBirthDate,
	FieldPhone,
	FieldDocumentType,
	FieldDocumentID,
}

var ErrUnknownField = errors.New("unknown patient field")

// Observer receives patient lifecycle events. Implementations must not fail.
type Observer interface {
	PatientCreated(p *Patient)
	FieldChanged(field string, created bool)
	FieldDeleted(field string)
	FieldFailed(field string, err error)
}

type nopObserver struct{}

func (nopObserver) PatientCreated(*Patient)   {}
func (nopObserver) FieldChanged(string, bool) {}
func (nopObserver) FieldDeleted(string)       {}
func (nopObserver) FieldFailed(string, error) {}

type Option func(*Patient)

func WithObserver(observer Observer) Option {
	return func(p *Patient) {
		if observer != nil {
			p.observer = observer
		}
	}
}

// Patient is a patient record made of six validated fields. First and last
// name are set once. The document type must be set before the document
// number, and the number length must match the type.
type Patient struct {
	firstName    *ValidatedField[string]
	lastName     *ValidatedField[string]
	birthDate    *ValidatedField[string]
	phone        *ValidatedField[string]
	documentType *ValidatedField[string]
	documentID   *ValidatedField[string]

	observer Observer
}

func newPatient(opts ...Option) *Patient {
	p := &Patient{observer: nopObserver{}}
	for _, opt := range opts {
		opt(p)
	}

	p.firstName = NewValidatedField(FieldFirstName, validator.Name, SetOnce)
	p.lastName = NewValidatedField(FieldLastName, validator.Name, SetOnce)
	p.birthDate = NewValidatedField(FieldBirthDate, validator.BirthDate, Mutable)
	p.phone = NewValidatedField(FieldPhone, validator.Phone, Mutable)
	p.documentType = NewValidatedField(FieldDocumentType, validator.DocumentType, Mutable).
		WithRule(p.checkDocumentType)
	p.documentID = NewValidatedField(FieldDocumentID, validator.DocumentNumber, Mutable).
		WithRule(p.checkDocumentID)
	return p
}

// Create builds a patient from raw values, assigning them in FieldNames
// order. Any failing field aborts construction.
func Create(firstName, lastName, birthDate, phone, documentType, documentID string, opts ...Option) (*Patient, error) {
	p, err := build(map[string]any{
		FieldFirstName:    firstName,
		FieldLastName:     lastName,
		FieldBirthDate:    birthDate,
		FieldPhone:        phone,
		FieldDocumentType: documentType,
		FieldDocumentID:   documentID,
	}, opts...)
	if err != nil {
		return nil, err
	}
	p.observer.PatientCreated(p)
	return p, nil
}

// Restore rebuilds a stored patient through the same assignment path as
// Create, so corrupted values are caught. A missing key is a type error.
func Restore(values map[string]any, opts ...Option) (*Patient, error) {
	return build(values, opts...)
}

func build(values map[string]any, opts ...Option) (*Patient, error) {
	p := newPatient(opts...)
	for _, name := range FieldNames {
		if err := p.Set(name, values[name]); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Set assigns a raw value to the named field. Non-string values are rejected
// before validation.
func (p *Patient) Set(name string, value any) error {
	field, err := p.field(name)
	if err != nil {
		p.observer.FieldFailed(name, err)
		return err
	}

	raw, ok := value.(string)
	if !ok {
		err := &apperror.TypeError{Field: name, Got: value}
		p.observer.FieldFailed(name, err)
		return err
	}

	created, err := field.Set(raw)
	if err != nil {
		p.observer.FieldFailed(name, err)
		return err
	}
	p.observer.FieldChanged(name, created)
	return nil
}

// Get returns the normalized value of the named field.
func (p *Patient) Get(name string) (string, error) {
	field, err := p.field(name)
	if err != nil {
		return "", err
	}
	value, err := field.Get()
	if err != nil {
		p.observer.FieldFailed(name, err)
		return "", err
	}
	return value, nil
}

// Delete returns the named field to the unset state. The document type
// cannot be removed while a document number depends on it.
func (p *Patient) Delete(name string) error {
	field, err := p.field(name)
	if err == nil && name == FieldDocumentType && p.documentID.IsSet() {
		err = &apperror.ValidationError{
			Field:  FieldDocumentType,
			Reason: "document number is set",
			Err:    apperror.ErrDocumentTypeNotSet,
		}
	}
	if err == nil {
		err = field.Delete()
	}
	if err != nil {
		p.observer.FieldFailed(name, err)
		return err
	}
	p.observer.FieldDeleted(name)
	return nil
}

func (p *Patient) SetBirthDate(value string) error    { return p.Set(FieldBirthDate, value) }
func (p *Patient) SetPhone(value string) error        { return p.Set(FieldPhone, value) }
func (p *Patient) SetDocumentType(value string) error { return p.Set(FieldDocumentType, value) }
func (p *Patient) SetDocumentID(value string) error   { return p.Set(FieldDocumentID, value) }

func (p *Patient) FirstName() string    { return p.firstName.value }
func (p *Patient) LastName() string     { return p.lastName.value }
func (p *Patient) BirthDate() string    { return p.birthDate.value }
func (p *Patient) Phone() string        { return p.phone.value }
func (p *Patient) DocumentType() string { return p.documentType.value }
func (p *Patient) DocumentID() string   { return p.documentID.value }

// Values returns the normalized fields in FieldNames order.
func (p *Patient) Values() []string {
	return []string{
		p.firstName.value,
		p.lastName.value,
		p.birthDate.value,
		p.phone.value,
		p.documentType.value,
		p.documentID.value,
	}
}

func (p *Patient) String() string {
	return strings.Join(p.Values(), " ")
}

func (p *Patient) field(name string) (*ValidatedField[string], error) {
	switch name {
	case FieldFirstName:
		return p.firstName, nil
	case FieldLastName:
		return p.lastName, nil
	case FieldBirthDate:
		return p.birthDate, nil
	case FieldPhone:
		return p.phone, nil
	case FieldDocumentType:
		return p.documentType, nil
	case FieldDocumentID:
		return p.documentID, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
}

func (p *Patient) checkDocumentType(documentType string) error {
	if !p.documentID.IsSet() {
		return nil
	}
	if !validator.DocumentMatchesType(documentType, p.documentID.value) {
		return errDocumentMismatch()
	}
	return nil
}

func (p *Patient) checkDocumentID(documentID string) error {
	if !p.documentType.IsSet() {
		return &apperror.ValidationError{
			Reason: apperror.ErrDocumentTypeNotSet.Error(),
			Err:    apperror.ErrDocumentTypeNotSet,
		}
	}
	if !validator.DocumentMatchesType(p.documentType.value, documentID) {
		return errDocumentMismatch()
	}
	return nil
}

func errDocumentMismatch() *apperror.ValidationError {
	return apperror.NewValidation("Number of characters does not match the type of document")
}
