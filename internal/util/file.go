package util

import (
	"fmt"
	"os"
	"time"
)

// AddUniquePrefixToFileName prefixes the stored name so repeated uploads of
// the same file never collide inside a project directory.
func AddUniquePrefixToFileName(fileName string) string {
	uniquePrefix, err := GenerateNChar(12)
	if err != nil {
		uniquePrefix = fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return fmt.Sprintf("%s_%s", uniquePrefix, fileName)
}

func GetTempDir() string {
	return fmt.Sprintf("%s/agencyflow", os.TempDir())
}

func CreateTemp(pattern string) (*os.File, error) {
	tempDir := GetTempDir()
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	return os.CreateTemp(tempDir, pattern)
}
