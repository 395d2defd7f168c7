package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/SAP-F-2025/examprep-service/internal/config"
	"github.com/SAP-F-2025/examprep-service/internal/generation"
)

func TestRenderModels_MarksDefaultModel(t *testing.T) {
	t.Setenv("GEMINI_MODELS", "")

	models := []generation.ModelInfo{
		{Name: "gemini-2.5-flash", DisplayName: "Flash", InputTokenLimit: 1048576, OutputTokenLimit: 65536},
		{Name: "gemini-1.5-pro", DisplayName: "Pro", InputTokenLimit: 2097152, OutputTokenLimit: 8192},
	}

	var out bytes.Buffer
	renderModels(&out, models, config.GenerationModels())

	rows := map[string]string{}
	for _, line := range strings.Split(out.String(), "\n") {
		for _, m := range models {
			if strings.Contains(line, m.Name) {
				rows[m.Name] = line
			}
		}
	}

	tests := []struct {
		model      string
		configured bool
	}{
		{"gemini-2.5-flash", true},
		{"gemini-1.5-pro", false},
	}
	for _, tt := range tests {
		row, ok := rows[tt.model]
		if !ok {
			t.Fatalf("no row for %s in:\n%s", tt.model, out.String())
		}
		if got := strings.Contains(row, "yes"); got != tt.configured {
			t.Errorf("%s configured = %v, want %v (row %q)", tt.model, got, tt.configured, row)
		}
	}
}
