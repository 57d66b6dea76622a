package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridsnake/internal/config"
)

var flagShowDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Loads the configuration the same way 'play' does, validates it and
prints it as YAML. The --tick override is applied.

Search order:
  --config <path>
  ~/.gridsnake/config.yaml
  ./configs/snake.yaml
  built-in defaults

Examples:
  snake config
  snake config --defaults > ~/.gridsnake/config.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagShowDefaults, "defaults", false, "Print the built-in defaults instead")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	if flagShowDefaults {
		_, err := out.Write(config.DefaultYAML())
		return err
	}

	sess, err := loadSession()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "# source: %s\n", sess.source)
	_, err = out.Write(sess.yaml)
	return err
}
