package dto

// CreatePatientRequest carries the raw values of the create command
type CreatePatientRequest struct {
	FirstName      string `flag:"first_name" validate:"required,patient_name"`
	LastName       string `flag:"last_name" validate:"required,patient_name"`
	BirthDate      string `flag:"birth-date" validate:"required"`
	Phone          string `flag:"phone" validate:"required"`
	DocumentType   string `flag:"document-type" validate:"required"`
	DocumentNumber string `flag:"document-number" validate:"required"`
}

// ShowPatientsRequest carries the arguments of the show command
type ShowPatientsRequest struct {
	Limit int  `flag:"limit" validate:"gte=0"`
	JSON  bool `flag:"json"`
}

// PatientResponse represents a stored patient in command output
type PatientResponse struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	BirthDate    string `json:"birth_date"`
	Phone        string `json:"phone"`
	DocumentType string `json:"document_type"`
	DocumentID   string `json:"document_id"`
}
