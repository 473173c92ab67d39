package domain

// Severity is the closed set of flash message severities.
type Severity string

const (
	// SeveritySuccess is a confirmation of a completed action.
	SeveritySuccess Severity = "success"

	// SeverityDanger is an error surfaced to the user.
	SeverityDanger Severity = "danger"

	// SeverityInfo is a neutral notice.
	SeverityInfo Severity = "info"
)

// Valid reports whether the severity is one of the known values.
func (s Severity) Valid() bool {
	switch s {
	case SeveritySuccess, SeverityDanger, SeverityInfo:
		return true
	}

	return false
}

// Flash is a one-shot status message stored against the session, rendered
// once on the next page and then discarded.
type Flash struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// NewFlash creates a flash message. An unknown severity falls back to info.
func NewFlash(message string, severity Severity) Flash {
	if !severity.Valid() {
		severity = SeverityInfo
	}

	return Flash{Message: message, Severity: severity}
}
