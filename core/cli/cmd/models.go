package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/EJcoding/DataAngelo/core/llm/ollama"
)

// modelsCmd lists the models available on the configured Ollama instance
var modelsCmd = &cobra.Command{
	Use:           "models",
	Short:         "List models available on the Ollama instance",
	Args:          cobra.NoArgs,
	RunE:          runModels,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(modelsCmd)

	modelsCmd.Flags().StringVarP(&configFile, "file", "f", "", "Path to the configuration file (default .dataangelo.yaml)")
}

func runModels(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client := ollama.New(ollama.WithBaseURL(cfg.Ollama.URL))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	models, err := client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("could not connect to Ollama at %s: %w", cfg.Ollama.URL, err)
	}

	out := cmd.OutOrStdout()
	if len(models) == 0 {
		fmt.Fprintln(out, "No models installed. Pull one with: ollama pull "+cfg.Ollama.Model)
		return nil
	}
	for _, m := range models {
		marker := "  "
		if m.Name == cfg.Ollama.Model {
			marker = "* "
		}
		fmt.Fprintf(out, "%s%s\n", marker, m.Name)
	}
	return nil
}
