package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/emacskeys/internal/log"
)

// SaveKeyOverrides replaces the keys section of the config file.
// This preserves comments and formatting in other sections by using yaml.Node.
func SaveKeyOverrides(configPath string, keys []KeyBinding) error {
	node, err := buildKeysNode(keys)
	if err != nil {
		return fmt.Errorf("building keys node: %w", err)
	}
	if err := saveSection(configPath, "keys", node); err != nil {
		return err
	}
	log.Info(log.CatConfig, "Saved key overrides", "path", configPath, "count", len(keys))
	return nil
}

// SetKeyOverride binds gesture to command in existing and saves the result.
// A gesture already present is rebound in place; a new one is appended.
func SetKeyOverride(configPath string, existing []KeyBinding, gesture, command string) ([]KeyBinding, error) {
	keys := make([]KeyBinding, 0, len(existing)+1)
	found := false
	for _, kb := range existing {
		if kb.Gesture == gesture {
			kb.Command = command
			found = true
		}
		keys = append(keys, kb)
	}
	if !found {
		keys = append(keys, KeyBinding{Gesture: gesture, Command: command})
	}
	if err := ValidateKeys(keys); err != nil {
		return nil, err
	}
	if err := SaveKeyOverrides(configPath, keys); err != nil {
		return nil, err
	}
	return keys, nil
}

func buildKeysNode(keys []KeyBinding) (*yaml.Node, error) {
	var node yaml.Node
	if keys == nil {
		keys = []KeyBinding{}
	}
	if err := node.Encode(keys); err != nil {
		return nil, err
	}
	// Quote values so gestures such as "-" or "1" stay strings
	for _, item := range node.Content {
		for i := 1; i < len(item.Content); i += 2 {
			item.Content[i].Style = yaml.DoubleQuotedStyle
		}
	}
	return &node, nil
}

// saveSection swaps one top-level key of the YAML document for node and
// writes the file atomically.
func saveSection(configPath, key string, node *yaml.Node) error {
	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	if doc.Kind == 0 {
		doc = yaml.Node{
			Kind: yaml.DocumentNode,
			Content: []*yaml.Node{
				{
					Kind: yaml.MappingNode,
					Content: []*yaml.Node{
						{Kind: yaml.ScalarNode, Value: key},
						node,
					},
				},
			},
		}
	} else if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		root := doc.Content[0]
		if root.Kind != yaml.MappingNode {
			return fmt.Errorf("parsing config: top level is not a mapping")
		}
		found := false
		for i := 0; i < len(root.Content)-1; i += 2 {
			if root.Content[i].Value == key {
				root.Content[i+1] = node
				found = true
				break
			}
		}
		if !found {
			root.Content = append(root.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: key},
				node,
			)
		}
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	// Write atomically (write to temp, then rename)
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".emacskeys.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(buf.Bytes()); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, configPath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	return nil
}
