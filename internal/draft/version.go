// Package draft publishes packages as draft versions on the management
// service.
package draft

import (
	"strings"
	"time"
)

// Version is the service's view of a draft after an update.
type Version struct {
	// RegistrationID identifies the remote extension registration.
	RegistrationID string

	// LastUserInteractionAt is when the draft was last updated, in UTC.
	LastUserInteractionAt time.Time

	// Location is the URL where the draft can be reviewed. May be empty.
	Location string

	// ValidationErrors are the service's complaints about the package,
	// in the order reported. They do not make the update fail.
	ValidationErrors []ValidationError
}

// HasErrors reports whether the service returned validation errors.
func (v *Version) HasErrors() bool {
	return len(v.ValidationErrors) > 0
}

// ValidationError is a single service-side complaint about a field.
type ValidationError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

// Path joins the field path with dots. Empty when the error is not tied to
// a field.
func (e ValidationError) Path() string {
	return strings.Join(e.Field, ".")
}

func (e ValidationError) String() string {
	if p := e.Path(); p != "" {
		return p + ": " + e.Message
	}
	return e.Message
}
