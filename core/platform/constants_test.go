package platform_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/stokaro/seshat/core/platform"
)

func TestNormalizeValidationLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "moderate", input: "moderate", expected: platform.ValidationLevelModerate},
		{name: "moderate uppercase", input: "MODERATE", expected: platform.ValidationLevelModerate},
		{name: "strict", input: "strict", expected: platform.ValidationLevelStrict},
		{name: "off", input: "off", expected: platform.ValidationLevelOff},
		{name: "none alias", input: "none", expected: platform.ValidationLevelOff},
		{name: "disabled alias", input: "disabled", expected: platform.ValidationLevelOff},
		{name: "unknown", input: "lenient", expected: ""},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)
			c.Assert(platform.NormalizeValidationLevel(tt.input), qt.Equals, tt.expected)
		})
	}
}

func TestNormalizeValidationAction(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "error", input: "error", expected: platform.ValidationActionError},
		{name: "reject alias", input: "reject", expected: platform.ValidationActionError},
		{name: "warn", input: "warn", expected: platform.ValidationActionWarn},
		{name: "warning alias", input: "Warning", expected: platform.ValidationActionWarn},
		{name: "unknown", input: "ignore", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)
			c.Assert(platform.NormalizeValidationAction(tt.input), qt.Equals, tt.expected)
		})
	}
}

func TestDefaults(t *testing.T) {
	c := qt.New(t)

	c.Assert(platform.DefaultValidationLevel, qt.Equals, platform.ValidationLevelModerate)
	c.Assert(platform.DefaultValidationAction, qt.Equals, platform.ValidationActionError)
}
