// Command listmodels prints the generation models available to GEMINI_API_KEY
// and marks the ones configured in GEMINI_MODELS.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"

	"github.com/SAP-F-2025/examprep-service/internal/config"
	"github.com/SAP-F-2025/examprep-service/internal/generation"
)

func main() {
	if err := run(); err != nil {
		color.Red("%v", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	generator, err := generation.NewGeminiGenerator(ctx, os.Getenv("GEMINI_API_KEY"))
	if err != nil {
		return err
	}
	defer generator.Close()

	models, err := generator.ListModels(ctx)
	if err != nil {
		return err
	}

	renderModels(os.Stdout, models, config.GenerationModels())
	color.Cyan("%d models support content generation", len(models))
	return nil
}

// renderModels writes one table row per model, marking the configured ones
func renderModels(w io.Writer, models []generation.ModelInfo, configured []string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Model", "Display name", "Input tokens", "Output tokens", "Configured"})
	table.SetBorder(false)
	for _, m := range models {
		mark := ""
		if slices.Contains(configured, m.Name) {
			mark = "yes"
		}
		table.Append([]string{m.Name, m.DisplayName, fmt.Sprint(m.InputTokenLimit), fmt.Sprint(m.OutputTokenLimit), mark})
	}
	table.Render()
}
