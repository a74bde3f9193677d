package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetupError(t *testing.T) {
	err := &SetupError{Message: "no split files found under /tmp/results"}
	assert.Equal(t, "no split files found under /tmp/results", err.Error())
}

func TestSetupErrorDetection(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		isSetup bool
	}{
		{
			name:    "SetupError",
			err:     &SetupError{Message: "invalid root"},
			isSetup: true,
		},
		{
			name:    "regular error",
			err:     errors.New("write failed"),
			isSetup: false,
		},
		{
			name:    "wrapped SetupError",
			err:     errors.Join(&SetupError{Message: "invalid root"}, errors.New("additional context")),
			isSetup: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var setupErr *SetupError
			assert.Equal(t, tt.isSetup, errors.As(tt.err, &setupErr))
		})
	}
}
