package protocol

const (
	keyAuthenticate  = "authenticate"
	keyDirectMessage = "directmessage"
	keyFetch         = "fetch"
	keyToken         = "token"
)

// FetchMode selects which stored messages a fetch request retrieves.
type FetchMode string

const (
	FetchAll    FetchMode = "all"
	FetchUnread FetchMode = "unread"
)

// Valid reports whether m is one of the two modes the server accepts. The
// match is exact and case-sensitive.
func (m FetchMode) Valid() bool {
	return m == FetchAll || m == FetchUnread
}

// ParseFetchMode returns raw as a FetchMode or a ProtocolError.
func ParseFetchMode(raw string) (FetchMode, error) {
	m := FetchMode(raw)
	if !m.Valid() {
		return "", &ProtocolError{Msg: msgInvalidFetchMode}
	}
	return m, nil
}

// Credentials is the username/password pair sent to authenticate.
type Credentials struct {
	Username string
	Password string
}

// Payload returns the authenticate envelope.
func (c Credentials) Payload() string {
	doc := set("", keyAuthenticate+".username", c.Username)
	return set(doc, keyAuthenticate+".password", c.Password)
}

// DirectMessageRequest is a message addressed to one recipient.
type DirectMessageRequest struct {
	Token     string
	Recipient string
	Message   string
	Timestamp float64
}

// Payload returns the compact wire form. Token sits beside the
// directmessage envelope, not inside it.
func (r DirectMessageRequest) Payload() string {
	doc := set("", keyToken, r.Token)
	doc = set(doc, keyDirectMessage+".recipient", r.Recipient)
	doc = set(doc, keyDirectMessage+".message", r.Message)
	return set(doc, keyDirectMessage+".timestamp", r.Timestamp)
}

// FetchRequest asks the server for stored messages.
type FetchRequest struct {
	Token string
	Mode  FetchMode
}

// Payload validates the mode and returns the wire form.
func (r FetchRequest) Payload() (string, error) {
	if !r.Mode.Valid() {
		return "", &ProtocolError{Msg: msgInvalidFetchMode}
	}
	doc := set("", keyToken, r.Token)
	return set(doc, keyFetch, string(r.Mode)), nil
}

// FormatAuthMessage builds an authenticate request. Credentials are not
// validated here.
func (c Codec) FormatAuthMessage(username, password string) string {
	return Credentials{Username: username, Password: password}.Payload()
}

// FormatDirectMessage builds an indented direct message stamped with the
// codec clock.
func (c Codec) FormatDirectMessage(token, recipient, message string) string {
	req := DirectMessageRequest{
		Token:     token,
		Recipient: recipient,
		Message:   message,
		Timestamp: UnixSeconds(c.now()),
	}
	return c.indent(req.Payload())
}

// FormatFetchRequest builds a fetch request for mode.
func (c Codec) FormatFetchRequest(token string, mode FetchMode) (string, error) {
	return FetchRequest{Token: token, Mode: mode}.Payload()
}

func FormatAuthMessage(username, password string) string {
	return Default.FormatAuthMessage(username, password)
}

func FormatDirectMessage(token, recipient, message string) string {
	return Default.FormatDirectMessage(token, recipient, message)
}

func FormatFetchRequest(token string, mode FetchMode) (string, error) {
	return Default.FormatFetchRequest(token, mode)
}

// FormatFetchAll builds a fetch request with the default mode.
func FormatFetchAll(token string) string {
	out, _ := Default.FormatFetchRequest(token, FetchAll)
	return out
}
