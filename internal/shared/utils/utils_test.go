package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateOrderReference(t *testing.T) {
	pattern := regexp.MustCompile(`^ORDER_\d+_[A-Z0-9]{8}$`)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		ref := GenerateOrderReference()
		assert.Regexp(t, pattern, ref)
		assert.False(t, seen[ref], "order references must not repeat")
		seen[ref] = true
	}
}
