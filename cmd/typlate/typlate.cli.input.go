package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// readInput reads content from a file or stdin
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == InputSourceStdin {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// writeOutput writes content to a file or stdout
func writeOutput(path string, data []byte, stdout io.Writer) error {
	if path == FlagDefaultOutput {
		_, err := stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, FilePermissions)
}

// writeJSON writes v as indented JSON followed by a newline.
// Nothing is written if v cannot be marshaled.
func writeJSON(w io.Writer, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(jsonBytes))
	return err
}

// schemaFile is the YAML document accepted by --schema
type schemaFile struct {
	Fields []string `yaml:"fields"`
}

// loadFieldNames merges names from a comma-separated list and a schema file
func loadFieldNames(list, schemaPath string) ([]string, error) {
	var names []string
	for _, name := range strings.Split(list, FieldSeparator) {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}

	if schemaPath != "" {
		raw, err := os.ReadFile(schemaPath)
		if err != nil {
			return nil, err
		}
		var doc schemaFile
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, err
		}
		names = append(names, doc.Fields...)
	}
	return names, nil
}

// loadData decodes template data from an inline JSON string or a JSON/YAML file
func loadData(jsonStr, filePath string) (map[string]any, error) {
	result := make(map[string]any)

	switch {
	case filePath != "":
		raw, err := os.ReadFile(filePath)
		if err != nil {
			return nil, err
		}
		ext := strings.ToLower(filepath.Ext(filePath))
		if ext == ExtYAML || ext == ExtYML {
			err = yaml.Unmarshal(raw, &result)
		} else {
			err = json.Unmarshal(raw, &result)
		}
		if err != nil {
			return nil, err
		}
	case jsonStr != "":
		if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// sortedKeys returns the keys of data in sorted order
func sortedKeys(data map[string]any) []string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
