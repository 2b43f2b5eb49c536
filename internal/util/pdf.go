package util

import (
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// ValidatePdfFile checks that the file at path is a structurally valid PDF.
// The MIME gate upstream only looks at the declared content type; this
// catches renamed or truncated files before they are attached to a project.
func ValidatePdfFile(path string) error {
	return api.ValidateFile(path, nil)
}
