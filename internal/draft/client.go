package draft

import "context"

// UpdateDraftInput is everything the service needs to store a draft.
type UpdateDraftInput struct {
	APIKey             string            `json:"apiKey"`
	RegistrationID     string            `json:"registrationId"`
	ExtensionPointType string            `json:"extensionPointType"`
	Title              string            `json:"title"`
	ScriptName         string            `json:"scriptName"`
	CompiledType       string            `json:"compiledType"`
	Content            []byte            `json:"content"`
	Digest             string            `json:"digest"`
	SchemaVersions     map[string]string `json:"schemaVersions"`
	UseMsgpack         bool              `json:"useMsgpack"`
	ConfigUI           string            `json:"configUi,omitempty"`
	Force              bool              `json:"force"`
}

// RegisterInput requests a new extension registration.
type RegisterInput struct {
	APIKey             string `json:"apiKey"`
	Shop               string `json:"shop"`
	ExtensionPointType string `json:"extensionPointType"`
	Title              string `json:"title"`
}

// Client is the transport to the management service.
type Client interface {
	// UpdateDraft stores a draft version. Validation errors are part of the
	// returned Version, not an error.
	UpdateDraft(ctx context.Context, in UpdateDraftInput) (*Version, error)

	// Register creates a registration and returns its id.
	Register(ctx context.Context, in RegisterInput) (string, error)
}
