package protocol

import (
	"strings"
	"time"

	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// DefaultIndent matches the four-space layout of the reference client.
const DefaultIndent = "    "

// Codec formats outbound requests. The zero value is usable and behaves like
// Default.
type Codec struct {
	// Clock supplies the direct message timestamp; nil means time.Now.
	Clock func() time.Time
	// Indent is used to pretty print direct messages; empty means compact.
	Indent string
}

// Default is the codec behind the package-level Format functions.
var Default = Codec{Clock: time.Now, Indent: DefaultIndent}

func (c Codec) now() time.Time {
	if c.Clock == nil {
		return time.Now()
	}
	return c.Clock()
}

func (c Codec) indent(doc string) string {
	if c.Indent == "" {
		return doc
	}
	out := pretty.PrettyOptions([]byte(doc), &pretty.Options{
		Width:  80,
		Indent: c.Indent,
	})
	return strings.TrimSuffix(string(out), "\n")
}

// UnixSeconds converts t to fractional seconds since the epoch.
func UnixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

// set panics on failure; every path handed to it is a package constant.
func set(doc, path string, value any) string {
	out, err := sjson.Set(doc, path, value)
	if err != nil {
		panic("protocol: sjson path " + path + ": " + err.Error())
	}
	return out
}
