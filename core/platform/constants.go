package platform

import (
	"strings"
)

// MongoDB schema validation levels.
const (
	ValidationLevelOff      = "off"
	ValidationLevelStrict   = "strict"
	ValidationLevelModerate = "moderate"
)

// MongoDB schema validation actions.
const (
	ValidationActionError = "error"
	ValidationActionWarn  = "warn"
)

// Defaults applied when a collection definition does not spell out its
// validation behavior: re-check only documents that were already valid
// (moderate), and reject non-conforming writes outright (error).
const (
	DefaultValidationLevel  = ValidationLevelModerate
	DefaultValidationAction = ValidationActionError
)

func NormalizeValidationLevel(level string) string {
	switch strings.ToLower(level) {
	case "off", "none", "disabled":
		return ValidationLevelOff
	case "strict":
		return ValidationLevelStrict
	case "moderate":
		return ValidationLevelModerate
	default:
		return ""
	}
}

func NormalizeValidationAction(action string) string {
	switch strings.ToLower(action) {
	case "error", "reject":
		return ValidationActionError
	case "warn", "warning":
		return ValidationActionWarn
	default:
		return ""
	}
}
