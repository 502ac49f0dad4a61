// Package inference defines the provider collaborator boundary: a single
// Invoke call that turns a prompt into raw model text. The engine owns no
// retry or timeout logic beyond recognizing the unsupported-temperature
// condition; everything else propagates.
package inference

import (
	"context"
	"errors"
)

// ErrTemperatureUnsupported marks a provider rejection caused specifically
// by the temperature parameter. The orchestrator retries such a request
// exactly once without temperature.
var ErrTemperatureUnsupported = errors.New("temperature not supported for model")

// Message is one chat message of the inference request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request describes a single inference call. Temperature is nil when the
// caller does not want sampling control.
type Request struct {
	Model         string
	System        string
	Messages      []Message
	Temperature   *float64
	ReasoningHint string
}

// Provider executes inference requests against an external model provider.
type Provider interface {
	Invoke(ctx context.Context, req Request) (string, error)
}
