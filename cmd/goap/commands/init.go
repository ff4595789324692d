package commands

import (
	"github.com/dyluth/goap/internal/printer"
	"github.com/dyluth/goap/internal/scaffold"
	"github.com/spf13/cobra"
)

var (
	forceInit bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a sample goap.yml",
	Long: `Create a sample goap.yml in the current directory.

The sample defines a "camper" group that looks for a fire to stay warm and a
"hunter" group that chases a wandering player, ready for 'goap simulate'.

Use --force to overwrite an existing goap.yml.`,
	RunE: runInit,
}

func init() {
	// Note: Cannot use -f shorthand because it conflicts with the --config shorthand on simulate
	initCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing goap.yml")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	if !forceInit {
		if err := scaffold.CheckExisting(); err != nil {
			return printer.Error("goap.yml already exists", err.Error(), nil)
		}
	}

	if err := scaffold.Initialize(forceInit); err != nil {
		return printer.Error("initialization failed", err.Error(), nil)
	}

	scaffold.PrintSuccess()

	return nil
}
