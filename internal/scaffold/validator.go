package scaffold

import (
	"fmt"
	"os"
)

// CheckExisting returns an error if goap.yml already exists in the current directory.
func CheckExisting() error {
	if _, err := os.Stat(ConfigFile); err != nil {
		return nil
	}

	return fmt.Errorf("project already initialized\n\nFound existing: %s\nUse 'goap init --force' to reinitialize (this will overwrite existing configuration)", ConfigFile)
}
