package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// sectionDecoders maps each top-level YAML key to the Config section it
// replaces. Keys missing here are ignored.
//
//nolint:gochecknoglobals // Read-only lookup table.
var sectionDecoders = map[string]func(*Config, *yaml.Node) error{
	"profile": func(c *Config, n *yaml.Node) error { return replaceSection(&c.Profile, n) },
	"store":   func(c *Config, n *yaml.Node) error { return replaceSection(&c.Store, n) },
	"output":  func(c *Config, n *yaml.Node) error { return replaceSection(&c.Output, n) },
	"logging": func(c *Config, n *yaml.Node) error { return replaceSection(&c.Logging, n) },
}

// ApplyOverlay reads the YAML file at overlayPath and replaces every section
// of target it names. A section is replaced as a whole, so keys missing from
// an overlay section fall back to zero values rather than to target's. On
// error target is left untouched.
func ApplyOverlay(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("applying config overlay: nil target")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading config overlay: %w", err)
	}

	var sections map[string]yaml.Node
	if err = yaml.Unmarshal(data, &sections); err != nil {
		return fmt.Errorf("parsing config overlay %s: %w", overlayPath, err)
	}

	merged := *target
	for name, node := range sections {
		apply, known := sectionDecoders[name]
		if !known {
			continue
		}
		if err = apply(&merged, &node); err != nil {
			return fmt.Errorf("config overlay %s, section %q (line %d): %w", overlayPath, name, node.Line, err)
		}
	}
	*target = merged
	return nil
}

func replaceSection[T any](dst *T, n *yaml.Node) error {
	var fresh T
	if err := n.Decode(&fresh); err != nil {
		return err
	}
	*dst = fresh
	return nil
}
