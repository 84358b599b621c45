package cli

import (
	"errors"

	"github.com/editor-extensions/extgen/internal/generator"
	"github.com/editor-extensions/extgen/internal/ui"
	"github.com/spf13/cobra"
)

var (
	generateConfig    string
	generateRepo      string
	generateTemplates string
	generateDryRun    bool
	generateForce     bool
)

func init() {
	generateCmd.Flags().StringVarP(&generateConfig, "config", "c", "", "Path to the extension descriptor (.yaml, .toml or .json)")
	generateCmd.Flags().StringVar(&generateRepo, "repo", ".", "Root of the editor-extensions checkout")
	generateCmd.Flags().StringVar(&generateTemplates, "templates", "", "Directory of template overrides")
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "Preview the changes without writing anything")
	generateCmd.Flags().BoolVar(&generateForce, "force", false, "Overwrite an existing extension directory")
	_ = generateCmd.MarkFlagRequired("config")
	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a language extension and wire it into the monorepo",
	Example: `  extgen generate -c python.yaml
  extgen generate -c rust.toml --repo ../editor-extensions --dry-run`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := loadOptions(generateConfig, generateRepo, generateTemplates)
		if err != nil {
			return err
		}
		opts.DryRun = generateDryRun
		opts.Force = generateForce

		result := generator.Run(opts)
		ui.New(cmd.OutOrStdout()).Result(result, generateDryRun)
		if !result.Success {
			return errors.New("generation failed")
		}
		return nil
	},
}
