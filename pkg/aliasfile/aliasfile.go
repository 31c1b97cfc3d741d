// Package aliasfile reads command aliases from YAML or TOML files.
//
// Both formats list aliases under a top-level "aliases" table keyed by command name:
//
//	# aliases.yaml
//	aliases:
//	  checkout: [co, switch]
//	  status: [st]
//
//	# aliases.toml
//	[aliases]
//	checkout = ["co", "switch"]
//	status = ["st"]
//
// Commands and aliases are returned in the order they appear in the document.
package aliasfile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is an alias file encoding.
type Format string

const (
	YAML Format = "yaml"
	TOML Format = "toml"
)

// Entry holds the aliases of one command.
type Entry struct {
	Command string
	Aliases []string
}

// FormatFromPath returns the format matching the file extension of path.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	default:
		return "", fmt.Errorf("unsupported alias file extension %q: must be one of .yaml, .yml, .toml", ext)
	}
}

// Load reads the alias file at path. The format is chosen by file extension.
func Load(path string) ([]Entry, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read alias file: %w", err)
	}
	entries, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse alias file %s: %w", path, err)
	}
	return entries, nil
}

// Parse decodes alias file contents in the given format. An empty document yields no entries.
func Parse(data []byte, format Format) ([]Entry, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	switch format {
	case YAML:
		return parseYAML(data)
	case TOML:
		return parseTOML(data)
	default:
		return nil, fmt.Errorf("unknown alias file format %q", format)
	}
}

func parseYAML(data []byte) ([]Entry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	top := doc.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping at the top level", top.Line)
	}
	var aliases *yaml.Node
	for i := 0; i+1 < len(top.Content); i += 2 {
		if top.Content[i].Value == "aliases" {
			aliases = top.Content[i+1]
			break
		}
	}
	if aliases == nil || aliases.Tag == "!!null" {
		return nil, nil
	}
	if aliases.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: aliases must be a mapping of command names to alias lists", aliases.Line)
	}
	// Mapping nodes keep document order, unlike decoding into a Go map.
	entries := make([]Entry, 0, len(aliases.Content)/2)
	for i := 0; i+1 < len(aliases.Content); i += 2 {
		key, value := aliases.Content[i], aliases.Content[i+1]
		var list []string
		if err := value.Decode(&list); err != nil {
			return nil, fmt.Errorf("line %d: aliases of command %q must be a list of strings", value.Line, key.Value)
		}
		entries = append(entries, Entry{Command: key.Value, Aliases: list})
	}
	return entries, nil
}

func parseTOML(data []byte) ([]Entry, error) {
	var doc struct {
		Aliases map[string][]string `toml:"aliases"`
	}
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, err
	}
	// Keys reports every key in document order; pick the direct children of [aliases].
	var entries []Entry
	for _, key := range md.Keys() {
		if len(key) != 2 || key[0] != "aliases" {
			continue
		}
		entries = append(entries, Entry{Command: key[1], Aliases: doc.Aliases[key[1]]})
	}
	return entries, nil
}
