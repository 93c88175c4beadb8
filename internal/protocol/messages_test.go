package protocol

import (
	"strings"
	"testing"
	"time"

	"github.com/danmuck/dsproto/internal/testutil/testlog"
)

func TestDirectMessagesDecodesEntries(t *testing.T) {
	testlog.Start(t)
	raw := `{"response":{"type":"ok","messages":[
		{"message":"Hi","from":"alice","timestamp":1700000000.25},
		{"message":"Sent","recipient":"carol","timestamp":"soon"},
		{"message":"Legacy","sender":"dave"},
		"plain",
		42,
		null
	]}}`
	resp, err := ExtractJSON(raw)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	dms := resp.DirectMessages()
	if len(dms) != 4 {
		t.Fatalf("expected 4 decoded messages, got %d: %+v", len(dms), dms)
	}
	if dms[0].Message != "Hi" || dms[0].From != "alice" || dms[0].Timestamp != 1700000000.25 {
		t.Fatalf("unexpected first message: %+v", dms[0])
	}
	if dms[1].Recipient != "carol" || dms[1].From != "" || dms[1].Timestamp != 0 {
		t.Fatalf("unexpected second message: %+v", dms[1])
	}
	if dms[2].From != "dave" {
		t.Fatalf("expected sender fallback, got %+v", dms[2])
	}
	if dms[3].Message != "plain" {
		t.Fatalf("unexpected string entry: %+v", dms[3])
	}
}

func TestDirectMessagesEmpty(t *testing.T) {
	testlog.Start(t)
	resp, err := ExtractJSON(`{"response":{"type":"ok"}}`)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got := resp.DirectMessages(); len(got) != 0 {
		t.Fatalf("expected no messages, got %+v", got)
	}
	var nilResp *ServerResponse
	if nilResp.DirectMessages() != nil {
		t.Fatalf("nil response should decode to nil")
	}
}

func TestDirectMessageString(t *testing.T) {
	testlog.Start(t)
	ts := time.Date(2024, 3, 9, 14, 5, 6, 0, time.Local)
	from := DirectMessage{Message: "yo", From: "alice", Timestamp: UnixSeconds(ts)}
	if got := from.String(); got != "[2024-03-09 14:05:06] From: alice: yo" {
		t.Fatalf("unexpected render: %q", got)
	}
	to := DirectMessage{Message: "hey", Recipient: "bob", Timestamp: UnixSeconds(ts)}
	if got := to.String(); !strings.HasSuffix(got, "To: bob: hey") {
		t.Fatalf("unexpected render: %q", got)
	}
}
