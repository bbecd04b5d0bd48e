package domain

import (
	"errors"
	"fmt"
	"regexp"
)

var (
	ErrPluginDisabled   = errors.New("effect plugin is disabled")
	ErrChecksumMismatch = errors.New("effect plugin checksum mismatch")
	ErrEffectNotFound   = errors.New("effect not found")
	ErrPluginTimeout    = errors.New("effect plugin timeout")
)

var sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

// Manifest describes one installed effect plugin binary. Manifests are small
// JSON files dropped into the plugins directory; the checksum pins the exact
// binary the operator vetted.
type Manifest struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Binary  string `json:"binary"`
	SHA256  string `json:"sha256"`
	Enabled bool   `json:"enabled"`
}

func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("plugin name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("plugin version is required")
	}
	if m.Binary == "" {
		return fmt.Errorf("plugin binary path is required")
	}
	if !sha256Pattern.MatchString(m.SHA256) {
		return fmt.Errorf("plugin sha256 must be lowercase 64-char hex")
	}
	return nil
}

// EffectDescriptor is one named transform a plugin offers.
type EffectDescriptor struct {
	ID          string
	Title       string
	Description string
}

func (d EffectDescriptor) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("effect id is required")
	}
	return nil
}

type Metadata struct {
	Name    string
	Version string
}
