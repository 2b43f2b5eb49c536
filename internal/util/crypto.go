package util

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// GenerateNChar returns an n character url-safe random id.
func GenerateNChar(n int) (string, error) {
	return gonanoid.New(n)
}
