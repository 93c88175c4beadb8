package protocol

import (
	"fmt"

	"github.com/valyala/fastjson"
)

const (
	keyResponse = "response"
	keyType     = "type"
	keyMessage  = "message"
	keyMessages = "messages"

	// KindOK is the response type the server sends on success.
	KindOK = "ok"
)

// ServerResponse is a decoded server reply. It is built only by ExtractJSON
// and not modified afterwards.
type ServerResponse struct {
	// Kind is the response type; empty when the server omitted it.
	Kind    string
	Message string
	// Token is nil when the response carried no token.
	Token *string
	// Messages holds string entries verbatim and any other entry as compact
	// JSON text.
	Messages []string

	entries [][]byte
}

// TokenValue returns the token and whether one was present.
func (r *ServerResponse) TokenValue() (string, bool) {
	if r == nil || r.Token == nil {
		return "", false
	}
	return *r.Token, true
}

// ExtractJSON parses a raw server reply. Every failure is a *ProtocolError.
func ExtractJSON(raw string) (*ServerResponse, error) {
	var p fastjson.Parser
	doc, err := p.Parse(raw)
	if err != nil {
		return nil, decodeError(err)
	}
	if doc.Type() != fastjson.TypeObject || !doc.Exists(keyResponse) {
		return nil, &ProtocolError{Msg: msgMissingResponse}
	}
	resp, err := readResponse(doc.Get(keyResponse))
	if err != nil {
		return nil, processingError(err)
	}
	return resp, nil
}

// IsValidResponse reports whether resp is a successful reply.
func IsValidResponse(resp *ServerResponse) bool {
	return resp != nil && resp.Kind == KindOK
}

func readResponse(v *fastjson.Value) (*ServerResponse, error) {
	obj, err := v.Object()
	if err != nil {
		return nil, fmt.Errorf("'%s' is %s, not an object", keyResponse, v.Type())
	}
	resp := &ServerResponse{Messages: []string{}}

	kind, _, err := optionalString(obj, keyType)
	if err != nil {
		return nil, err
	}
	resp.Kind = kind

	message, _, err := optionalString(obj, keyMessage)
	if err != nil {
		return nil, err
	}
	resp.Message = message

	token, ok, err := optionalString(obj, keyToken)
	if err != nil {
		return nil, err
	}
	if ok {
		resp.Token = &token
	}

	if err := readMessages(obj, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// optionalString treats a missing key and JSON null alike.
func optionalString(obj *fastjson.Object, key string) (string, bool, error) {
	v := obj.Get(key)
	if v == nil || v.Type() == fastjson.TypeNull {
		return "", false, nil
	}
	b, err := v.StringBytes()
	if err != nil {
		return "", false, fmt.Errorf("'%s' is %s, not a string", key, v.Type())
	}
	return string(b), true, nil
}

func readMessages(obj *fastjson.Object, resp *ServerResponse) error {
	v := obj.Get(keyMessages)
	if v == nil || v.Type() == fastjson.TypeNull {
		return nil
	}
	items, err := v.Array()
	if err != nil {
		return fmt.Errorf("'%s' is %s, not an array", keyMessages, v.Type())
	}
	resp.Messages = make([]string, 0, len(items))
	resp.entries = make([][]byte, 0, len(items))
	for _, item := range items {
		raw := item.MarshalTo(nil)
		resp.entries = append(resp.entries, raw)
		if item.Type() == fastjson.TypeString {
			b, _ := item.StringBytes()
			resp.Messages = append(resp.Messages, string(b))
			continue
		}
		resp.Messages = append(resp.Messages, string(raw))
	}
	return nil
}
