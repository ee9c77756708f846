package services

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func pdfDataURI(payload []byte) string {
	return "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(payload)
}

func TestValidateMedicalDocument_AcceptsSmallPDF(t *testing.T) {
	if err := ValidateMedicalDocument(pdfDataURI([]byte("%PDF-1.4 test"))); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestValidateMedicalDocument_RejectsNonPDF(t *testing.T) {
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png-bytes"))

	err := ValidateMedicalDocument(uri)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := validationErr.Fields["medicalPdf"]; !ok {
		t.Fatalf("expected medicalPdf violation, got %v", validationErr.Fields)
	}
}

func TestValidateMedicalDocument_RejectsOversizedPDF(t *testing.T) {
	oversized := strings.Repeat("x", MaxMedicalDocumentBytes+1)

	err := ValidateMedicalDocument(pdfDataURI([]byte(oversized)))
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestValidateMedicalDocument_RejectsMalformedURI(t *testing.T) {
	for _, uri := range []string{"", "not-a-data-uri", "data:application/pdf,plain-not-base64"} {
		if err := ValidateMedicalDocument(uri); err == nil {
			t.Fatalf("expected error for %q", uri)
		}
	}
}
