package config

import (
	"fmt"
	"os"
)

// Template is a commented starting point for a dspfmt config file.
const Template = `[codec]
# pretty print indent for direct messages; "" writes compact JSON
indent = "    "
# default mode for "dspfmt fetch": "all" or "unread"
fetch_mode = "all"

[log]
level = "info"
no_color = false
`

func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(Template), 0o600)
}
