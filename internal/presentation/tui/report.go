package tui

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aretw0/flowserve/pkg/domain"
	"github.com/muesli/termenv"
)

// Status colours a run status for terminal output.
func Status(status string) string {
	p := termenv.ColorProfile()
	switch status {
	case domain.StatusSuccess:
		return termenv.String(status).Foreground(p.Color("#22c55e")).Bold().String()
	case "":
		return termenv.String("no entry").Foreground(p.Color("#f59e0b")).Bold().String()
	default:
		return termenv.String(status).Foreground(p.Color("#ef4444")).Bold().String()
	}
}

// ReportMarkdown describes a run result as a markdown document.
func ReportMarkdown(res domain.Result) string {
	var sb strings.Builder
	status := res.Status
	if status == "" {
		status = "no entry"
	}
	fmt.Fprintf(&sb, "# Run %s\n\n", status)
	if res.RunID != "" {
		fmt.Fprintf(&sb, "- **Run ID**: `%s`\n", res.RunID)
	}
	fmt.Fprintf(&sb, "- **Waves**: %d\n", res.Waves)
	if len(res.Visited) > 0 {
		fmt.Fprintf(&sb, "- **Path**: %s\n", strings.Join(res.Visited, " → "))
	}
	if res.Message != "" {
		fmt.Fprintf(&sb, "- **Message**: %s\n", res.Message)
	}
	if res.Error != "" {
		fmt.Fprintf(&sb, "- **Error**: %s\n", res.Error)
	}

	if res.Responded {
		sb.WriteString("\n## Response\n\n")
		writeJSONBlock(&sb, res.Response)
	}
	if res.Context != nil {
		sb.WriteString("\n## Context\n\n")
		writeJSONBlock(&sb, res.Context)
	}
	if len(res.Logs) > 0 {
		sb.WriteString("\n## Execution Log\n\n")
		for i, line := range res.Logs {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, line)
		}
	}
	return sb.String()
}

// RenderReport renders the markdown report of a run with glamour.
func RenderReport(res domain.Result) (string, error) {
	return NewRenderer()(ReportMarkdown(res))
}

func writeJSONBlock(sb *strings.Builder, v any) {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		raw = []byte(fmt.Sprintf("%v", v))
	}
	sb.WriteString("```json\n")
	sb.Write(raw)
	sb.WriteString("\n```\n")
}
