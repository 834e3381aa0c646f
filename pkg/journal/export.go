package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

var ErrUnknownFormat = errors.New("unknown export format")

// Formats lists the accepted Export formats.
var Formats = []string{"json", "yaml", "toml"}

// Export writes every entry, newest first, in the requested format.
func (l *Log) Export(w io.Writer, format string) error {
	entries := l.Entries()

	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return err
		}
		return enc.Close()
	case "toml":
		// TOML needs a table at the top level.
		return toml.NewEncoder(w).Encode(struct {
			Entries []Entry `toml:"entries"`
		}{entries})
	default:
		return fmt.Errorf("%w: %q (want one of %s)", ErrUnknownFormat, format, strings.Join(Formats, ", "))
	}
}
