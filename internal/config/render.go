package config

import (
	"encoding/json"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Formats lists the encodings Render accepts.
var Formats = []string{"json", "yaml", "toml"}

// Render encodes the effective configuration in format.
func Render(cfg *Config, format string) ([]byte, error) {
	switch format {
	case "", "json":
		out, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	case "yaml", "yml":
		return yaml.Marshal(cfg)
	case "toml":
		return toml.Marshal(cfg)
	default:
		return nil, fmt.Errorf("unknown format %q (want one of json, yaml, toml)", format)
	}
}
