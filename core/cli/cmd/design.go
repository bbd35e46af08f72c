package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/EJcoding/DataAngelo/core/design"
	"github.com/EJcoding/DataAngelo/core/llm/ollama"
	"github.com/EJcoding/DataAngelo/core/prompt"
)

var databaseType string

// designCmd generates a design once and prints it, without starting the server
var designCmd = &cobra.Command{
	Use:           "design <description>",
	Short:         "Generate a database design for a description and print it",
	Args:          cobra.MinimumNArgs(1),
	RunE:          runDesign,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(designCmd)

	designCmd.Flags().StringVarP(&configFile, "file", "f", "", "Path to the configuration file (default .dataangelo.yaml)")
	designCmd.Flags().StringVarP(&databaseType, "dialect", "d", "", "Target SQL dialect (default MySQL)")
	designCmd.Flags().IntVar(&logLevel, "log-level", 0, "Log level: 1=ERROR, 2=WARN, 3=INFO, 4=DEBUG")
	designCmd.Flags().BoolVarP(&verbose, "verbose", "", false, "Enable verbose logging (sets log level to DEBUG)")
}

func runDesign(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client := ollama.New(
		ollama.WithBaseURL(cfg.Ollama.URL),
		ollama.WithModel(cfg.Ollama.Model),
		ollama.WithTimeout(cfg.Ollama.Timeout()),
		ollama.WithOptions(ollama.GenerateOptions{
			Temperature: cfg.Ollama.Temperature,
			TopP:        cfg.Ollama.TopP,
			TopK:        cfg.Ollama.TopK,
		}),
	)

	renderer, err := prompt.NewRenderer(cfg.Prompts.Dir)
	if err != nil {
		return err
	}

	service := design.NewService(client, renderer)
	result, err := service.Design(context.Background(), strings.Join(args, " "), databaseType)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "## ERD (Mermaid)")
	fmt.Fprintln(out)
	fmt.Fprintln(out, result.ERDMermaid)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "## SQL")
	fmt.Fprintln(out)
	fmt.Fprintln(out, result.SQLQueries)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "## Explanation")
	fmt.Fprintln(out)
	fmt.Fprintln(out, result.Explanation)
	return nil
}
