package config

import (
	"strings"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

// DiffSerialized returns a line diff between two raw configuration files.
func DiffSerialized(previous, current []byte) string {
	return cmp.Diff(splitLines(previous), splitLines(current))
}

// Diff compares two decoded configurations. Both are rendered as YAML first,
// so TOML and YAML sources diff the same way.
func Diff(previous, current *Config) string {
	prev, err := yaml.Marshal(previous)
	if err != nil {
		return ""
	}
	curr, err := yaml.Marshal(current)
	if err != nil {
		return ""
	}
	return DiffSerialized(prev, curr)
}

func splitLines(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return []string{""}
	}
	return strings.Split(text, "\n")
}
