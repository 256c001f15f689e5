package genai

import (
	"context"
	"errors"
	"fmt"
)

// ErrMissingCredential marks a provider configured without an API key. This
// is a fatal configuration error, not a retryable one.
var ErrMissingCredential = errors.New("missing provider API credential")

// Capability selects which generation backend a request targets.
type Capability string

const (
	CapabilityText  Capability = "text"
	CapabilityImage Capability = "image"
)

type Request struct {
	Capability Capability
	Prompt     string
}

// Result carries exactly one payload, matching the request capability:
// Text for text completion, Image (a data URI) for image synthesis.
type Result struct {
	Capability Capability
	Text       string
	Image      string
}

// Generator is the uniform dispatch contract the session view depends on.
type Generator interface {
	Generate(ctx context.Context, req Request) (Result, error)
}

// TextProvider completes a single prompt. An empty reply with a nil error
// means the provider answered with nothing; the caller decides what to show.
type TextProvider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ImageProvider synthesizes one image and returns it as a ready-to-render
// data URI.
type ImageProvider interface {
	Synthesize(ctx context.Context, prompt string) (string, error)
}

// Dispatcher routes a request to one of the two fixed capabilities. Each call
// is a single best-effort attempt: no retry, no backoff, no circuit breaking.
type Dispatcher struct {
	text  TextProvider
	image ImageProvider
}

func NewDispatcher(text TextProvider, image ImageProvider) *Dispatcher {
	return &Dispatcher{
		text:  text,
		image: image,
	}
}

func (d *Dispatcher) Generate(ctx context.Context, req Request) (Result, error) {
	switch req.Capability {
	case CapabilityText:
		text, err := d.text.Complete(ctx, req.Prompt)
		if err != nil {
			return Result{}, err
		}
		return Result{Capability: CapabilityText, Text: text}, nil

	case CapabilityImage:
		image, err := d.image.Synthesize(ctx, req.Prompt)
		if err != nil {
			return Result{}, err
		}
		return Result{Capability: CapabilityImage, Image: image}, nil

	default:
		return Result{}, fmt.Errorf("unknown generation capability: %q", req.Capability)
	}
}
