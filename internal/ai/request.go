package ai

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// ErrInvalidRequest marks a request that was rejected before any attempt.
var ErrInvalidRequest = errors.New("invalid generation request")

// Payload is the inline binary attachment sent with the prompt.
type Payload struct {
	MIMEType string
	Data     string // standard base64, no data: prefix
}

// GenerationRequest is a single logical generateContent call.
// It is never modified after NewGenerationRequest returns.
type GenerationRequest struct {
	Credential string
	Model      string
	Prompt     string
	Payload    Payload
}

// NewGenerationRequest builds and validates a request.
func NewGenerationRequest(credential, model, prompt, mimeType, base64Data string) (*GenerationRequest, error) {
	req := &GenerationRequest{
		Credential: credential,
		Model:      model,
		Prompt:     prompt,
		Payload:    Payload{MIMEType: mimeType, Data: base64Data},
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// Validate checks that the request can be sent.
func (r *GenerationRequest) Validate() error {
	switch {
	case strings.TrimSpace(r.Credential) == "":
		return fmt.Errorf("%w: credential is empty", ErrInvalidRequest)
	case strings.TrimSpace(r.Model) == "":
		return fmt.Errorf("%w: model is empty", ErrInvalidRequest)
	case strings.TrimSpace(r.Payload.MIMEType) == "":
		return fmt.Errorf("%w: mime type is empty", ErrInvalidRequest)
	}
	if _, err := r.Payload.Bytes(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return nil
}

// Bytes decodes the base64 payload.
func (p Payload) Bytes() ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(p.Data)
	if err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return data, nil
}

// Contents returns the request body: one user turn holding the prompt text
// followed by the inline attachment.
func (r *GenerationRequest) Contents() ([]*genai.Content, error) {
	data, err := r.Payload.Bytes()
	if err != nil {
		return nil, err
	}
	parts := []*genai.Part{
		genai.NewPartFromText(r.Prompt),
		genai.NewPartFromBytes(data, r.Payload.MIMEType),
	}
	return []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}, nil
}
