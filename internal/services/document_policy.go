package services

import (
	"fmt"

	"github.com/activelife/activelife/internal/planner"
)

// MaxMedicalDocumentBytes caps uploaded medical documents at 5 MB.
const MaxMedicalDocumentBytes = 5 << 20

const medicalDocumentMIME = "application/pdf"

// ValidateMedicalDocument rejects non-PDF and oversized uploads before any
// network call is made.
func ValidateMedicalDocument(dataURI string) error {
	mimeType, payload, err := planner.ParseDataURI(dataURI)
	if err != nil {
		return newValidationError(map[string]string{
			"medicalPdf": "document must be a base64 data URI",
		})
	}
	if mimeType != medicalDocumentMIME {
		return newValidationError(map[string]string{
			"medicalPdf": "document must be a PDF",
		})
	}
	if len(payload) > MaxMedicalDocumentBytes {
		return newValidationError(map[string]string{
			"medicalPdf": fmt.Sprintf("document must be smaller than %d MB", MaxMedicalDocumentBytes>>20),
		})
	}
	return nil
}
