package project

import (
	"encoding/json"
	"fmt"
	"os"
)

// Marshal renders the project as the menu.json save-archive document:
// 2-space indent, no trailing newline.
func Marshal(p *MenuProject) ([]byte, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal project: %w", err)
	}
	return data, nil
}

// Unmarshal parses a menu.json document.
func Unmarshal(data []byte) (*MenuProject, error) {
	var p MenuProject
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse project: %w", err)
	}
	return &p, nil
}

// LoadFile reads and parses a project file from disk.
func LoadFile(path string) (*MenuProject, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}
	return Unmarshal(data)
}

// SaveFile writes the project document to disk.
func SaveFile(path string, p *MenuProject) error {
	data, err := Marshal(p)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}
	return nil
}
