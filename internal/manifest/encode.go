package manifest

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Encode writes m to w in the given format: json, yaml/yml or toml.
func Encode(w io.Writer, m Manifest, format string) error {
	switch f := strings.ToLower(format); f {
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return err
		}
		return enc.Close()
	case "toml":
		return toml.NewEncoder(w).Encode(m)
	default:
		return fmt.Errorf("unsupported manifest format: %s", f)
	}
}
