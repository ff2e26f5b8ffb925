package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionDefault(t *testing.T) {
	// Unreleased builds carry "dev"; releases override via ldflags.
	assert.NotEmpty(t, Version)
}
