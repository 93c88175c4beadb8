package protocol

import (
	"errors"
	"strings"
	"testing"

	"github.com/danmuck/dsproto/internal/testutil/testlog"
)

func TestExtractJSONOkDefaults(t *testing.T) {
	testlog.Start(t)
	resp, err := ExtractJSON(`{"response":{"type":"ok","message":"hi"}}`)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if resp.Kind != "ok" || resp.Message != "hi" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Token != nil {
		t.Fatalf("expected absent token, got %q", *resp.Token)
	}
	if resp.Messages == nil || len(resp.Messages) != 0 {
		t.Fatalf("expected empty messages, got %#v", resp.Messages)
	}
	if !IsValidResponse(resp) {
		t.Fatalf("expected ok response to be valid")
	}
}

func TestExtractJSONToken(t *testing.T) {
	testlog.Start(t)
	resp, err := ExtractJSON(`{"response":{"type":"ok","message":"Welcome","token":"abc-123"}}`)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	tok, ok := resp.TokenValue()
	if !ok || tok != "abc-123" {
		t.Fatalf("unexpected token: %q %v", tok, ok)
	}
}

func TestExtractJSONErrorKindIsNotValid(t *testing.T) {
	testlog.Start(t)
	resp, err := ExtractJSON(`{"response":{"type":"error","message":"bad login"}}`)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if IsValidResponse(resp) {
		t.Fatalf("error response must not be valid")
	}
	if resp.Message != "bad login" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
}

func TestExtractJSONMissingTypeIsNotAnError(t *testing.T) {
	testlog.Start(t)
	resp, err := ExtractJSON(`{"response":{"message":"no type"}}`)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if resp.Kind != "" {
		t.Fatalf("expected empty kind, got %q", resp.Kind)
	}
	if IsValidResponse(resp) {
		t.Fatalf("response without type must not be valid")
	}
}

func TestExtractJSONNullFieldsUseDefaults(t *testing.T) {
	testlog.Start(t)
	resp, err := ExtractJSON(`{"response":{"type":"ok","message":null,"token":null,"messages":null}}`)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if resp.Message != "" || resp.Token != nil || len(resp.Messages) != 0 {
		t.Fatalf("expected defaults, got %+v", resp)
	}
}

func TestExtractJSONMessages(t *testing.T) {
	testlog.Start(t)
	raw := `{"response":{"type":"ok","messages":["one","two",{"message":"Hi","from":"bob","timestamp":1.5}]}}`
	resp, err := ExtractJSON(raw)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(resp.Messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(resp.Messages))
	}
	if resp.Messages[0] != "one" || resp.Messages[1] != "two" {
		t.Fatalf("unexpected order: %#v", resp.Messages)
	}
	if resp.Messages[2] != `{"message":"Hi","from":"bob","timestamp":1.5}` {
		t.Fatalf("unexpected object entry: %s", resp.Messages[2])
	}
}

func TestExtractJSONDecodeFailure(t *testing.T) {
	testlog.Start(t)
	for _, raw := range []string{"not json", "", `{"response":`, `{"response":{}}trailing`} {
		_, err := ExtractJSON(raw)
		pe := requireProtocolError(t, err)
		if !strings.HasPrefix(pe.Msg, "Failed to decode JSON: ") {
			t.Fatalf("unexpected message for %q: %q", raw, pe.Msg)
		}
		if pe.Unwrap() == nil {
			t.Fatalf("expected wrapped decoder error for %q", raw)
		}
	}
}

func TestExtractJSONMissingResponse(t *testing.T) {
	testlog.Start(t)
	for _, raw := range []string{`{"foo":1}`, `[1,2]`, `"response"`, `{}`} {
		_, err := ExtractJSON(raw)
		pe := requireProtocolError(t, err)
		if pe.Msg != msgMissingResponse {
			t.Fatalf("unexpected message for %s: %q", raw, pe.Msg)
		}
	}
}

func TestExtractJSONProcessingFailure(t *testing.T) {
	testlog.Start(t)
	cases := map[string]string{
		`{"response":null}`:                        "'response'",
		`{"response":"ok"}`:                        "'response'",
		`{"response":{"type":5}}`:                  "'type'",
		`{"response":{"type":"ok","message":[]}}`:  "'message'",
		`{"response":{"type":"ok","token":1}}`:     "'token'",
		`{"response":{"type":"ok","messages":{}}}`: "'messages'",
	}
	for raw, field := range cases {
		_, err := ExtractJSON(raw)
		pe := requireProtocolError(t, err)
		if !strings.HasPrefix(pe.Msg, "Error processing server response: ") {
			t.Fatalf("unexpected message for %s: %q", raw, pe.Msg)
		}
		if !strings.Contains(pe.Msg, field) {
			t.Fatalf("message for %s should name %s: %q", raw, field, pe.Msg)
		}
	}
}

func TestIsValidResponseNil(t *testing.T) {
	testlog.Start(t)
	if IsValidResponse(nil) {
		t.Fatalf("nil response must not be valid")
	}
	if IsValidResponse(&ServerResponse{Kind: "OK"}) {
		t.Fatalf("kind match must be exact")
	}
}

func requireProtocolError(t *testing.T, err error) *ProtocolError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error")
	}
	var pe *ProtocolError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ProtocolError, got %T: %v", err, err)
	}
	return pe
}
