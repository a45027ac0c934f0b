package entity

// PatientRecord is the persisted row of a Patient.
type PatientRecord struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName    string `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName     string `gorm:"type:varchar(100);not null" json:"last_name"`
	BirthDate    string `gorm:"type:varchar(10);not null" json:"birth_date"`
	Phone        string `gorm:"type:varchar(12);not null" json:"phone"`
	DocumentType string `gorm:"type:varchar(50);not null" json:"document_type"`
	DocumentID   string `gorm:"type:varchar(12);not null" json:"document_id"`
}

func (PatientRecord) TableName() string {
	return "patients"
}
