package protocol

import (
	"fmt"
	"time"

	"github.com/tidwall/gjson"
)

const displayTimeLayout = "2006-01-02 15:04:05"

// DirectMessage is one entry of a fetch reply. Messages received from
// another user carry From; copies of sent messages carry Recipient.
type DirectMessage struct {
	Message   string
	From      string
	Recipient string
	Timestamp float64
}

// Time returns the timestamp as a local time.
func (m DirectMessage) Time() time.Time {
	sec := int64(m.Timestamp)
	nsec := int64((m.Timestamp - float64(sec)) * float64(time.Second))
	return time.Unix(sec, nsec)
}

func (m DirectMessage) String() string {
	peer := "To: " + m.Recipient
	if m.From != "" {
		peer = "From: " + m.From
	}
	return fmt.Sprintf("[%s] %s: %s", m.Time().Format(displayTimeLayout), peer, m.Message)
}

// DirectMessages decodes the Messages entries. Entries that are neither a
// string nor an object are skipped.
func (r *ServerResponse) DirectMessages() []DirectMessage {
	if r == nil {
		return nil
	}
	out := make([]DirectMessage, 0, len(r.entries))
	for _, raw := range r.entries {
		if dm, ok := decodeEntry(gjson.ParseBytes(raw)); ok {
			out = append(out, dm)
		}
	}
	return out
}

func decodeEntry(entry gjson.Result) (DirectMessage, bool) {
	switch {
	case entry.Type == gjson.String:
		return DirectMessage{Message: entry.Str}, true
	case entry.IsObject():
		dm := DirectMessage{
			Message:   entry.Get(keyMessage).String(),
			From:      firstString(entry, "from", "sender"),
			Recipient: firstString(entry, "to", "recipient"),
		}
		// Non-numeric timestamps are left at zero.
		if ts := entry.Get("timestamp"); ts.Type == gjson.Number {
			dm.Timestamp = ts.Num
		}
		return dm, true
	default:
		return DirectMessage{}, false
	}
}

func firstString(entry gjson.Result, keys ...string) string {
	for _, key := range keys {
		if v := entry.Get(key); v.Type == gjson.String && v.Str != "" {
			return v.Str
		}
	}
	return ""
}
