package validator

import (
	"strings"
	"time"
	"unicode"

	"patient-records/pkg/apperror"
)

// Document type labels accepted by DocumentType, in canonical lower case.
const (
	DocumentPassport              = "passport"
	DocumentInternationalPassport = "international passport"
	DocumentForeignPassport       = "foreign passport"
	DocumentDriversLicense        = "driver's license"
	DocumentDrivingLicense        = "driving license"
)

const (
	dateLayout       = "2006-01-02"
	phoneCountryCode = "+7"
	phoneDigits      = 11
	birthDateLength  = 10

	// grouped lengths: "XX XX XXXXXX" and "XX XXXXXXX"
	groupedNationalDocumentLength      = 12
	groupedInternationalDocumentLength = 10
)

var documentTypes = map[string]struct{}{
	DocumentPassport:              {},
	DocumentInternationalPassport: {},
	DocumentForeignPassport:       {},
	DocumentDriversLicense:        {},
	DocumentDrivingLicense:        {},
}

// Name accepts letters only and returns the value capitalized.
func Name(value string) (string, error) {
	runes := []rune(value)
	if len(runes) == 0 {
		return "", apperror.NewValidation("Name or surname contains invalid characters")
	}
	for _, r := range runes {
		if !unicode.IsLetter(r) {
			return "", apperror.NewValidation("Name or surname contains invalid characters")
		}
	}

	runes[0] = unicode.ToUpper(runes[0])
	for i := 1; i < len(runes); i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes), nil
}

// BirthDate normalizes a ten character date to YYYY-MM-DD, rejecting dates
// after today.
func BirthDate(value string) (string, error) {
	return BirthDateAt(value, time.Now())
}

// BirthDateAt is BirthDate with an explicit notion of today.
func BirthDateAt(value string, today time.Time) (string, error) {
	runes := []rune(value)
	if len(runes) != birthDateLength {
		return "", apperror.NewValidation("Incorrect date length")
	}

	// separators at 4 and 7 are rewritten, whatever they were
	runes[4], runes[7] = '-', '-'
	for i, r := range runes {
		if i == 4 || i == 7 {
			continue
		}
		if !isASCIIDigit(r) {
			return "", apperror.NewValidation("Date contains invalid characters")
		}
	}
	born := string(runes)

	date, err := time.Parse(dateLayout, born)
	if err != nil {
		return "", apperror.NewValidation("Date does not exist")
	}
	if date.After(civilDate(today)) {
		return "", apperror.NewValidation("Date does not exist yet")
	}
	return born, nil
}

// Phone strips separators and rewrites an eleven digit number with the +7
// country prefix.
func Phone(value string) (string, error) {
	digits := strings.NewReplacer("+", "", "(", "", ")", "", "-", "", " ", "").Replace(value)

	if len([]rune(digits)) != phoneDigits {
		return "", apperror.NewValidation("Incorrect phone number length")
	}
	if !allASCIIDigits(digits) {
		return "", apperror.NewValidation("Phone number contains invalid characters")
	}
	return phoneCountryCode + digits[1:], nil
}

// DocumentType matches the value case-insensitively against the known labels.
func DocumentType(value string) (string, error) {
	label := strings.ToLower(value)
	if _, ok := documentTypes[label]; !ok {
		return "", apperror.NewValidation("Incorrect document")
	}
	return label, nil
}

// DocumentNumber strips separators and groups a nine or ten digit number.
func DocumentNumber(value string) (string, error) {
	digits := strings.NewReplacer(" ", "", "-", "", "/", "", `\`, "").Replace(value)

	if !allASCIIDigits(digits) {
		return "", apperror.NewValidation("Document number contains invalid characters")
	}

	switch len(digits) {
	case 10:
		return digits[:2] + " " + digits[2:4] + " " + digits[4:], nil
	case 9:
		return digits[:2] + " " + digits[2:], nil
	default:
		return "", apperror.NewValidation("Incorrect document's number length")
	}
}

// DocumentMatchesType reports whether an already grouped document number has
// the length required by the document type.
func DocumentMatchesType(documentType, number string) bool {
	switch documentType {
	case DocumentPassport, DocumentDriversLicense, DocumentDrivingLicense:
		return len(number) == groupedNationalDocumentLength
	case DocumentInternationalPassport, DocumentForeignPassport:
		return len(number) == groupedInternationalDocumentLength
	default:
		return false
	}
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func allASCIIDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !isASCIIDigit(r) {
			return false
		}
	}
	return true
}
