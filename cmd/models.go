package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/GenAICloudDevOps/clio-ai/internal/config"
	"github.com/GenAICloudDevOps/clio-ai/internal/modelcatalog"
)

var modelsCmd = &cobra.Command{
	Use:     "models",
	Short:   "List available models",
	Long:    `List the built-in model catalog plus any user additions from ~/.clio-ai/models.json.`,
	Aliases: []string{"model"},
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		models, err := modelcatalog.All(modelcatalog.UserCatalogPath())
		if err != nil {
			return fmt.Errorf("failed to load model catalog: %w", err)
		}

		active := config.Load().Model
		if modelFlag != "" {
			active = modelFlag
		}

		for _, m := range models {
			line := fmt.Sprintf("%s - %s (%s)", m.ID, m.Name, m.Provider)
			if m.ID == active {
				line += " (active)"
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
