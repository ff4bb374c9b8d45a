package draft

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"

	oerrors "github.com/draftpush/cli/internal/errors"
	"github.com/draftpush/cli/internal/output"
)

// CompressThreshold is the request body size above which bodies are gzipped.
const CompressThreshold = 1024

// maxDiagnostic bounds how much of an unexpected response body is kept.
const maxDiagnostic = 4096

const updateDraftMutation = `mutation ExtensionUpdateDraft($input: ExtensionUpdateDraftInput!) {
  extensionUpdateDraft(input: $input) {
    extensionVersion {
      registrationId
      lastUserInteractionAt
      location
      validationErrors { field message }
    }
    userErrors { field message }
  }
}`

const registerMutation = `mutation ExtensionCreate($input: ExtensionCreateInput!) {
  extensionCreate(input: $input) {
    extensionRegistration { id }
    userErrors { field message }
  }
}`

// HTTPOptions configures an HTTPClient.
type HTTPOptions struct {
	// Endpoint is the GraphQL endpoint URL.
	Endpoint string

	// Token is sent as a bearer token when set.
	Token string

	// Timeout bounds each request. Zero means no client-side limit.
	Timeout time.Duration

	// HTTPClient overrides the underlying client, mainly for tests.
	HTTPClient *http.Client
}

// HTTPClient talks to the management service over GraphQL-style JSON.
// Each call is a single attempt.
type HTTPClient struct {
	endpoint string
	token    string
	hc       *http.Client
}

// NewHTTPClient returns a Client for opts.Endpoint.
func NewHTTPClient(opts HTTPOptions) *HTTPClient {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	return &HTTPClient{endpoint: opts.Endpoint, token: opts.Token, hc: hc}
}

type gqlRequest struct {
	Query     string `json:"query"`
	Variables any    `json:"variables"`
}

type gqlError struct {
	Message string `json:"message"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

type userError = ValidationError

type versionPayload struct {
	RegistrationID        string            `json:"registrationId"`
	LastUserInteractionAt string            `json:"lastUserInteractionAt"`
	Location              string            `json:"location"`
	ValidationErrors      []ValidationError `json:"validationErrors"`
}

type updateDraftData struct {
	ExtensionUpdateDraft *struct {
		ExtensionVersion *versionPayload `json:"extensionVersion"`
		UserErrors       []userError     `json:"userErrors"`
	} `json:"extensionUpdateDraft"`
}

type registerData struct {
	ExtensionCreate *struct {
		ExtensionRegistration *struct {
			ID string `json:"id"`
		} `json:"extensionRegistration"`
		UserErrors []userError `json:"userErrors"`
	} `json:"extensionCreate"`
}

// UpdateDraft implements Client.
func (c *HTTPClient) UpdateDraft(ctx context.Context, in UpdateDraftInput) (*Version, error) {
	var data updateDraftData
	if err := c.do(ctx, oerrors.OpPublish, updateDraftMutation, in, &data); err != nil {
		return nil, err
	}

	payload := data.ExtensionUpdateDraft
	if payload == nil {
		return nil, failure(oerrors.OpPublish, "response is missing extensionUpdateDraft", "", nil)
	}
	if len(payload.UserErrors) > 0 {
		return nil, failure(oerrors.OpPublish, "service rejected the draft", joinUserErrors(payload.UserErrors), nil)
	}
	if payload.ExtensionVersion == nil {
		return nil, failure(oerrors.OpPublish, "response is missing extensionVersion", "", nil)
	}

	ev := payload.ExtensionVersion
	ts, err := time.Parse(time.RFC3339, ev.LastUserInteractionAt)
	if err != nil {
		return nil, failure(oerrors.OpPublish, "invalid lastUserInteractionAt", ev.LastUserInteractionAt, err)
	}

	return &Version{
		RegistrationID:        ev.RegistrationID,
		LastUserInteractionAt: ts.UTC(),
		Location:              ev.Location,
		ValidationErrors:      ev.ValidationErrors,
	}, nil
}

// Register implements Client.
func (c *HTTPClient) Register(ctx context.Context, in RegisterInput) (string, error) {
	var data registerData
	if err := c.do(ctx, oerrors.OpRegister, registerMutation, in, &data); err != nil {
		return "", err
	}

	payload := data.ExtensionCreate
	if payload == nil {
		return "", failure(oerrors.OpRegister, "response is missing extensionCreate", "", nil)
	}
	if len(payload.UserErrors) > 0 {
		return "", failure(oerrors.OpRegister, "service rejected the registration", joinUserErrors(payload.UserErrors), nil)
	}
	if payload.ExtensionRegistration == nil || payload.ExtensionRegistration.ID == "" {
		return "", failure(oerrors.OpRegister, "response is missing the registration id", "", nil)
	}
	return payload.ExtensionRegistration.ID, nil
}

func (c *HTTPClient) do(ctx context.Context, op, query string, input, out any) error {
	body, err := json.Marshal(gqlRequest{
		Query:     query,
		Variables: map[string]any{"input": input},
	})
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	encoding := ""
	if len(body) > CompressThreshold {
		compressed, err := compress(body)
		if err != nil {
			return fmt.Errorf("compressing request: %w", err)
		}
		output.Debug("compressed request body", "op", op, "from", len(body), "to", len(compressed))
		body, encoding = compressed, "gzip"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return failure(op, "building request", "", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if encoding != "" {
		req.Header.Set("Content-Encoding", encoding)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	output.Debug("sending request", "op", op, "endpoint", c.endpoint)
	resp, err := c.hc.Do(req)
	if err != nil {
		return failure(op, "request failed", "", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return failure(op, "reading response", "", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return failure(op, fmt.Sprintf("service responded %s", resp.Status), truncate(raw), nil)
	}

	var envelope gqlResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return failure(op, "decoding response", truncate(raw), err)
	}
	if len(envelope.Errors) > 0 {
		msgs := make([]string, len(envelope.Errors))
		for i, e := range envelope.Errors {
			msgs[i] = e.Message
		}
		return failure(op, "service returned errors", strings.Join(msgs, "\n"), nil)
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return failure(op, "response has no data", truncate(raw), nil)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return failure(op, "decoding response data", truncate(raw), err)
	}
	return nil
}

func compress(body []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(body); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func failure(op, message, diagnostic string, cause error) error {
	return &oerrors.ServiceFailureError{Op: op, Message: message, Output: diagnostic, Cause: cause}
}

func joinUserErrors(errs []userError) string {
	lines := make([]string, len(errs))
	for i, e := range errs {
		lines[i] = e.String()
	}
	return strings.Join(lines, "\n")
}

func truncate(b []byte) string {
	if len(b) > maxDiagnostic {
		return string(b[:maxDiagnostic]) + "..."
	}
	return string(b)
}
