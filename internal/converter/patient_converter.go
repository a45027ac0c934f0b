package converter

import (
	"patient-records/internal/delivery/dto"
	"patient-records/internal/domain/entity"
)

// PatientToRecord converts a Patient entity to its persisted PatientRecord row
func PatientToRecord(patient *entity.Patient) *entity.PatientRecord {
	if patient == nil {
		return nil
	}

	return &entity.PatientRecord{
		FirstName:    patient.FirstName(),
		LastName:     patient.LastName(),
		BirthDate:    patient.BirthDate(),
		Phone:        patient.Phone(),
		DocumentType: patient.DocumentType(),
		DocumentID:   patient.DocumentID(),
	}
}

// RecordToValues converts a PatientRecord row to the raw values entity.Restore expects
func RecordToValues(record *entity.PatientRecord) map[string]any {
	return map[string]any{
		entity.FieldFirstName:    record.FirstName,
		entity.FieldLastName:     record.LastName,
		entity.FieldBirthDate:    record.BirthDate,
		entity.FieldPhone:        record.Phone,
		entity.FieldDocumentType: record.DocumentType,
		entity.FieldDocumentID:   record.DocumentID,
	}
}

// PatientToLine converts a Patient entity to one delimited file line
func PatientToLine(patient *entity.Patient) []string {
	return patient.Values()
}

// LineToValues converts one delimited file line to the raw values
// entity.Restore expects. Missing columns are left out so Restore reports them.
func LineToValues(line []string) map[string]any {
	values := make(map[string]any, len(entity.FieldNames))
	for i, name := range entity.FieldNames {
		if i < len(line) {
			values[name] = line[i]
		}
	}
	return values
}

// PatientToResponse converts a Patient entity to PatientResponse DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientResponse{
		FirstName:    patient.FirstName(),
		LastName:     patient.LastName(),
		BirthDate:    patient.BirthDate(),
		Phone:        patient.Phone(),
		DocumentType: patient.DocumentType(),
		DocumentID:   patient.DocumentID(),
	}
}
