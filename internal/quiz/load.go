package quiz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ReadFile reads a quiz document stored in the wire shape as YAML or JSON.
func ReadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read quiz file: %w", err)
	}
	wire, err := parseWire(data, path)
	if err != nil {
		return Document{}, err
	}
	return FromWire(wire), nil
}

// WriteFile stores a document in the wire shape. The extension picks the format.
func WriteFile(path string, doc Document) error {
	data, err := Encode(doc, path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write quiz file: %w", err)
	}
	return nil
}

// Encode renders a document as JSON when path ends in .json, otherwise YAML.
func Encode(doc Document, path string) ([]byte, error) {
	wire := ToWire(doc)
	if isJSONPath(path) {
		data, err := json.MarshalIndent(wire, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return append(data, '\n'), nil
	}
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(wire); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

func isJSONPath(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".json"
}

func parseWire(data []byte, path string) (Wire, error) {
	if isJSONPath(path) {
		return parseJSONWire(data)
	}
	return parseYAMLWire(data)
}

func parseJSONWire(data []byte) (Wire, error) {
	var wire Wire
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&wire); err != nil {
		return Wire{}, fmt.Errorf("parse json: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Wire{}, fmt.Errorf("parse json: multiple documents are not supported")
		}
		return Wire{}, fmt.Errorf("parse json: %w", err)
	}
	return wire, nil
}

func parseYAMLWire(data []byte) (Wire, error) {
	var wire Wire
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&wire); err != nil {
		return Wire{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Wire{}, fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return Wire{}, fmt.Errorf("parse yaml: %w", err)
	}
	return wire, nil
}
