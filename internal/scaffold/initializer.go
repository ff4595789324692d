// Package scaffold creates a starter goap.yml for `goap init`.
package scaffold

import (
	"embed"
	"fmt"
	"os"

	"github.com/dyluth/goap/internal/config"
)

//go:embed templates/*
var templatesFS embed.FS

// ConfigFile is the file written by Initialize.
const ConfigFile = "goap.yml"

// FileInfo represents a file to be created during initialization
type FileInfo struct {
	Path        string
	Content     []byte
	Permissions os.FileMode
}

// Initialize writes a sample goap.yml to the current directory.
// If force is true, an existing goap.yml is removed first.
func Initialize(force bool) error {
	if force {
		if err := handleForce(); err != nil {
			return err
		}
	}

	files, err := getTemplateFiles()
	if err != nil {
		return err
	}

	if err := writeFiles(files); err != nil {
		return err
	}

	// The sample must load with the same rules `goap simulate` applies
	if err := validateCreatedFiles(); err != nil {
		return err
	}

	return nil
}

// handleForce removes existing files if --force was specified
func handleForce() error {
	if _, err := os.Stat(ConfigFile); err == nil {
		fmt.Printf("⚠️  Removing existing %s...\n", ConfigFile)
		if err := os.Remove(ConfigFile); err != nil {
			return fmt.Errorf("failed to remove %s: %w", ConfigFile, err)
		}
	}

	return nil
}

// getTemplateFiles reads all template files
func getTemplateFiles() ([]FileInfo, error) {
	content, err := templatesFS.ReadFile("templates/goap.yml.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to read %s template: %w", ConfigFile, err)
	}

	return []FileInfo{{
		Path:        ConfigFile,
		Content:     content,
		Permissions: 0644,
	}}, nil
}

// writeFiles writes all template files to disk
func writeFiles(files []FileInfo) error {
	for _, file := range files {
		if err := os.WriteFile(file.Path, file.Content, file.Permissions); err != nil {
			return fmt.Errorf("failed to write %s: %w", file.Path, err)
		}
	}

	return nil
}

func validateCreatedFiles() error {
	if _, err := config.Load(ConfigFile); err != nil {
		return fmt.Errorf("created %s is invalid: %w", ConfigFile, err)
	}

	return nil
}

// PrintSuccess prints the success message with created files
func PrintSuccess() {
	fmt.Println("\n✅ Successfully initialized goap project!")
	fmt.Println("\nCreated:")
	fmt.Printf("  ✓ %s\n", ConfigFile)
	fmt.Println("\nNext steps:")
	fmt.Printf("  1. Edit %s to add your own groups and entities\n", ConfigFile)
	fmt.Println("  2. Run 'goap simulate' to run the simulation")
	fmt.Println("  3. Add '--redis redis://localhost:6379' and run 'goap watch' in another terminal")
}
