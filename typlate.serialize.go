package typlate

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// A Template travels through external formats as its plain template text.
// Decoding parses and validates against the default schema of T (FieldsOf),
// so an invalid template fails the enclosing document decode.

// MarshalText implements encoding.TextMarshaler.
func (t Template[T]) MarshalText() ([]byte, error) {
	return []byte(t.Text()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Template[T]) UnmarshalText(text []byte) error {
	return t.decode(string(text))
}

// MarshalJSON encodes the template as a JSON string.
func (t Template[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Text())
}

// UnmarshalJSON decodes a JSON string into the template.
func (t *Template[T]) UnmarshalJSON(data []byte) error {
	var source string
	if err := json.Unmarshal(data, &source); err != nil {
		return NewDecodeError(FormatJSON, err)
	}
	return t.decode(source)
}

// MarshalYAML encodes the template as a YAML string scalar.
func (t Template[T]) MarshalYAML() (any, error) {
	return t.Text(), nil
}

// UnmarshalYAML decodes a YAML scalar into the template.
func (t *Template[T]) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return NewDecodeError(FormatYAML, nil)
	}
	var source string
	if err := value.Decode(&source); err != nil {
		return NewDecodeError(FormatYAML, err)
	}
	return t.decode(source)
}

func (t *Template[T]) decode(source string) error {
	parsed, err := Parse[T](source)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
