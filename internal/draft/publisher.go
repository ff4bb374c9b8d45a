package draft

import (
	"context"
	"fmt"

	"github.com/draftpush/cli/internal/output"
	"github.com/draftpush/cli/internal/project"
	"github.com/draftpush/cli/internal/pushpkg"
)

// UpdateOption adjusts a single Update call.
type UpdateOption func(*UpdateDraftInput)

// WithForce asks the service to replace the draft even when it would
// otherwise refuse.
func WithForce(force bool) UpdateOption {
	return func(in *UpdateDraftInput) { in.Force = force }
}

// Publisher turns projects and packages into service calls.
type Publisher struct {
	client Client
}

// NewPublisher returns a Publisher sending through client.
func NewPublisher(client Client) *Publisher {
	return &Publisher{client: client}
}

// Update submits pkg as the draft of p's registration.
func (pub *Publisher) Update(ctx context.Context, p *project.Project, pkg *pushpkg.Package, apiKey string, opts ...UpdateOption) (*Version, error) {
	in := UpdateDraftInput{
		APIKey:             apiKey,
		RegistrationID:     p.Env.RegistrationID,
		ExtensionPointType: pkg.ExtensionPointType(),
		Title:              p.DisplayTitle(),
		ScriptName:         pkg.ScriptName(),
		CompiledType:       pkg.CompiledType(),
		Content:            pkg.Content(),
		Digest:             pkg.Digest(),
		SchemaVersions:     map[string]string{},
		UseMsgpack:         pkg.Metadata().UseMsgpack,
	}
	for name, v := range pkg.Metadata().SchemaVersions {
		in.SchemaVersions[name] = v.String()
	}
	if ui := pkg.ConfigUI(); ui != nil {
		js, err := ui.JSON()
		if err != nil {
			return nil, err
		}
		in.ConfigUI = string(js)
	}
	for _, opt := range opts {
		opt(&in)
	}

	output.ProjectLogger(p.ScriptName).Debug("updating draft",
		"registration", in.RegistrationID, "bytes", pkg.Size(), "force", in.Force)

	v, err := pub.client.UpdateDraft(ctx, in)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, fmt.Errorf("service returned no version")
	}
	v.LastUserInteractionAt = v.LastUserInteractionAt.UTC()
	return v, nil
}

// Register creates a registration for p and returns its id.
func (pub *Publisher) Register(ctx context.Context, p *project.Project) (string, error) {
	return pub.client.Register(ctx, RegisterInput{
		APIKey:             p.Env.APIKey,
		Shop:               p.Env.Shop,
		ExtensionPointType: p.ExtensionPointType,
		Title:              p.DisplayTitle(),
	})
}
