// Package config loads the project manifest (toyc.toml) that supplies
// defaults the CLI would otherwise require on every invocation.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"
)

// tomlManifest is the on-disk shape of toyc.toml.
type tomlManifest struct {
	Entry        string `toml:"entry"`
	UnrollFactor int    `toml:"unroll-factor"`
	Optimize     *bool  `toml:"optimize"`
}

// Manifest is the resolved, defaulted project configuration.
type Manifest struct {
	Entry        string
	UnrollFactor int
	Optimize     bool
}

const defaultUnrollFactor = 1

// Default returns the manifest used when no toyc.toml is present.
func Default() *Manifest {
	return &Manifest{UnrollFactor: defaultUnrollFactor, Optimize: true}
}

// Load reads and validates the manifest at path. Mirrors the teacher's
// LoadModule: read the whole file, unmarshal, then validate field by field.
func Load(path string) (*Manifest, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open manifest at %q: %w", path, err)
	}

	tm := &tomlManifest{}
	if err := toml.Unmarshal(buf, tm); err != nil {
		return nil, fmt.Errorf("error parsing manifest at %q: %w", path, err)
	}

	return validate(tm)
}

func validate(tm *tomlManifest) (*Manifest, error) {
	if tm.Entry == "" {
		return nil, fmt.Errorf("manifest is missing required field `entry`")
	}

	m := &Manifest{
		Entry:        tm.Entry,
		UnrollFactor: tm.UnrollFactor,
		Optimize:     true,
	}

	if m.UnrollFactor == 0 {
		m.UnrollFactor = defaultUnrollFactor
	} else if m.UnrollFactor < 0 {
		return nil, fmt.Errorf("`unroll-factor` must be non-negative, got %d", m.UnrollFactor)
	}

	if tm.Optimize != nil {
		m.Optimize = *tm.Optimize
	}

	return m, nil
}
