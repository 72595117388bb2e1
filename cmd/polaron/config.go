package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// applyConfig merges a YAML mapping of flag names to values into the
// command's flag set. Flags given on the command line win over the file.
func applyConfig(cmd *cobra.Command) error {
	path, err := cmd.Flags().GetString("config")
	if err != nil || path == "" {
		return err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	values := map[string]any{}
	if err := yaml.Unmarshal(raw, &values); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	for name, value := range values {
		if cmd.Flags().Lookup(name) == nil || cmd.Flags().Changed(name) {
			continue
		}
		if err := cmd.Flags().Set(name, fmt.Sprint(value)); err != nil {
			return fmt.Errorf("config %s: flag %q: %w", path, name, err)
		}
	}

	return nil
}
