package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
)

// fakeDoer returns canned HTTP responses and records request bodies.
type fakeDoer struct {
	status   int
	body     string
	requests []string
}

// Do records the request payload and replies with the canned response.
func (d *fakeDoer) Do(req *http.Request) (*http.Response, error) {
	payload, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, err
	}
	d.requests = append(d.requests, string(payload))
	return &http.Response{
		StatusCode: d.status,
		Body:       io.NopCloser(bytes.NewReader([]byte(d.body))),
		Header:     http.Header{},
	}, nil
}

func chatBody(content string) string {
	return `{"choices":[{"message":{"content":` + jsonString(content) + `}}]}`
}

func jsonString(value string) string {
	encoded, _ := json.Marshal(value)
	return string(encoded)
}

// TestInvokeReturnsContent verifies the happy path and message layout.
func TestInvokeReturnsContent(t *testing.T) {
	doer := &fakeDoer{status: http.StatusOK, body: chatBody("B")}
	client, err := NewOpenRouterClient("key", "", doer)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	temperature := 0.7
	text, err := client.Invoke(context.Background(), Request{
		Model:       "test-model",
		System:      "Only the letter.",
		Messages:    []Message{{Role: "user", Content: "Pick one"}},
		Temperature: &temperature,
	})
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if text != "B" {
		t.Fatalf("expected B, got %q", text)
	}
	if len(doer.requests) != 1 {
		t.Fatalf("expected one request, got %d", len(doer.requests))
	}
	if !strings.Contains(doer.requests[0], `"temperature":0.7`) {
		t.Fatalf("temperature missing from payload: %s", doer.requests[0])
	}
	if !strings.Contains(doer.requests[0], `"role":"system"`) {
		t.Fatalf("system message missing from payload: %s", doer.requests[0])
	}
}

// TestInvokeTemperatureRejection verifies the typed unsupported-temperature error.
func TestInvokeTemperatureRejection(t *testing.T) {
	doer := &fakeDoer{status: http.StatusBadRequest, body: `{"error":"temperature is not supported for this model"}`}
	client, err := NewOpenRouterClient("key", "", doer)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	temperature := 0.0
	_, err = client.Invoke(context.Background(), Request{
		Model:       "test-model",
		Messages:    []Message{{Role: "user", Content: "Pick"}},
		Temperature: &temperature,
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, ErrTemperatureUnsupported) {
		t.Fatalf("expected ErrTemperatureUnsupported, got %v", err)
	}
}

// TestInvokeOtherErrorNotTyped verifies unrelated provider errors stay generic.
func TestInvokeOtherErrorNotTyped(t *testing.T) {
	doer := &fakeDoer{status: http.StatusInternalServerError, body: "upstream exploded"}
	client, err := NewOpenRouterClient("key", "", doer)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = client.Invoke(context.Background(), Request{
		Model:    "test-model",
		Messages: []Message{{Role: "user", Content: "Pick"}},
	})
	if err == nil {
		t.Fatalf("expected error")
	}
	if errors.Is(err, ErrTemperatureUnsupported) {
		t.Fatalf("generic failure must not be typed as temperature rejection")
	}
}

// TestNewOpenRouterClientRequiresKey verifies constructor validation.
func TestNewOpenRouterClientRequiresKey(t *testing.T) {
	if _, err := NewOpenRouterClient("  ", "", nil); err == nil {
		t.Fatalf("expected missing key error")
	}
}
