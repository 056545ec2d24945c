package transformer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// actionListFile is the on-disk form of a saved action list.
type actionListFile struct {
	Actions []Action `json:"actions" yaml:"actions"`
}

// LoadActions reads an action list from a JSON or YAML file. The format is
// chosen by extension; anything other than .yaml/.yml is treated as JSON.
func LoadActions(path string) ([]Action, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pipeline file: %w", err)
	}
	var doc actionListFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse pipeline yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse pipeline json: %w", err)
		}
	}
	return doc.Actions, nil
}

// SaveActions writes an action list to a JSON or YAML file, chosen by
// extension as in LoadActions.
func SaveActions(path string, actions []Action) error {
	doc := actionListFile{Actions: copyActions(actions)}
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(doc)
	default:
		data, err = json.MarshalIndent(doc, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encode pipeline: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write pipeline file: %w", err)
	}
	return nil
}
