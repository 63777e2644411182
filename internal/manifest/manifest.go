// Package manifest records what a generation run produced. The manifest is
// written next to the generated config file so other tooling can tell which
// target and format it holds and whether the content tree changed since.
package manifest

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// RunManifest describes one generation run.
type RunManifest struct {
	ID        string            `json:"id"`
	Timestamp time.Time         `json:"timestamp"`
	Inputs    Inputs            `json:"inputs"`
	Outputs   Outputs           `json:"outputs"`
	Pages     map[string]string `json:"pages,omitempty"` // slug -> fingerprint
	Status    string            `json:"status"`
	Duration  int64             `json:"duration_ms"`
}

// Inputs captures what the run was generated from.
type Inputs struct {
	ConfigHash  string       `json:"config_hash"`
	Target      string       `json:"target"`
	ContentRoot string       `json:"content_root"`
	Groups      []GroupInput `json:"groups"`
}

// GroupInput is a sidebar group as configured for the run.
type GroupInput struct {
	Label     string `json:"label"`
	Directory string `json:"directory"`
	Pages     int    `json:"pages"`
	Missing   bool   `json:"missing,omitempty"`
}

// Outputs captures the generated file.
type Outputs struct {
	File    string `json:"file"`
	Format  string `json:"format"`
	Hash    string `json:"hash"`
	Changed bool   `json:"changed"`
}

// ToJSON serializes the manifest to JSON.
func (m *RunManifest) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	return append(data, '\n'), nil
}

// FromJSON deserializes a manifest from JSON.
func FromJSON(data []byte) (*RunManifest, error) {
	var m RunManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	return &m, nil
}

// Read loads a manifest file.
func Read(path string) (*RunManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return FromJSON(data)
}

// Hash computes a deterministic hash of the run's inputs, output hash and
// page fingerprints. Two runs over identical inputs hash the same regardless
// of run id or timestamp.
func (m *RunManifest) Hash() (string, error) {
	hashInput := struct {
		Inputs     Inputs            `json:"inputs"`
		OutputHash string            `json:"output_hash"`
		Format     string            `json:"format"`
		Pages      map[string]string `json:"pages"`
	}{
		Inputs:     m.Inputs,
		OutputHash: m.Outputs.Hash,
		Format:     m.Outputs.Format,
		Pages:      m.Pages,
	}

	data, err := json.Marshal(hashInput)
	if err != nil {
		return "", fmt.Errorf("marshal for hash: %w", err)
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash), nil
}
