package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/flowserve/internal/presentation/graph"
	"github.com/aretw0/flowserve/internal/presentation/tui"
	"github.com/aretw0/flowserve/pkg/domain"
	"github.com/aretw0/flowserve/pkg/ports"
)

// ErrRunFailed is returned when a run did not end with a success status.
var ErrRunFailed = errors.New("workflow run failed")

// Output formats of the run command.
const (
	FormatAuto   = "auto"
	FormatJSON   = "json"
	FormatPretty = "pretty"
)

// RunOptions contains all the configuration for the Run command.
type RunOptions struct {
	Method  string
	Path    string
	Body    string // Raw JSON, or @file to read it from a file
	Query   []string
	Headers []string
	Format  string
	Mermaid bool
}

// runReport is the JSON rendition of a result, including the run metadata
// that the HTTP surface does not expose.
type runReport struct {
	domain.Result
	RunID   string   `json:"run_id"`
	Waves   int      `json:"waves"`
	Visited []string `json:"visited"`
}

// BuildInput turns command line options into a workflow input.
func BuildInput(opts RunOptions) (domain.Input, error) {
	in := domain.Input{
		Method:  "GET",
		Path:    "/",
		Query:   map[string]string{},
		Params:  map[string]string{},
		Headers: map[string]string{},
	}
	if opts.Method != "" {
		in.Method = strings.ToUpper(opts.Method)
	}
	if opts.Path != "" {
		in.Path = opts.Path
	}
	in.Params["path"] = strings.TrimPrefix(in.Path, "/")

	for _, kv := range opts.Query {
		k, v, err := splitPair(kv)
		if err != nil {
			return in, fmt.Errorf("invalid --query: %w", err)
		}
		in.Query[k] = v
	}
	for _, kv := range opts.Headers {
		k, v, err := splitPair(kv)
		if err != nil {
			return in, fmt.Errorf("invalid --header: %w", err)
		}
		in.Headers[strings.ToLower(k)] = v
	}

	raw := opts.Body
	if strings.HasPrefix(raw, "@") {
		data, err := os.ReadFile(strings.TrimPrefix(raw, "@"))
		if err != nil {
			return in, fmt.Errorf("failed to read body: %w", err)
		}
		raw = string(data)
	}
	if strings.TrimSpace(raw) != "" {
		if err := json.Unmarshal([]byte(raw), &in.Body); err != nil {
			return in, fmt.Errorf("error parsing --body JSON: %w", err)
		}
	}
	return in, nil
}

func splitPair(kv string) (string, string, error) {
	k, v, ok := strings.Cut(kv, "=")
	if !ok || k == "" {
		return "", "", fmt.Errorf("expected key=value, got %q", kv)
	}
	return k, v, nil
}

// RunOnce executes one run and writes the report to out.
// FormatAuto picks the pretty report when out is a terminal.
func RunOnce(ctx context.Context, runner ports.WorkflowRunner, opts RunOptions, out io.Writer) (domain.Result, error) {
	input, err := BuildInput(opts)
	if err != nil {
		return domain.Result{}, err
	}

	res := runner.Run(ctx, input)

	format := opts.Format
	if format == "" || format == FormatAuto {
		format = FormatJSON
		if f, ok := out.(*os.File); ok && tui.IsTerminal(f) {
			format = FormatPretty
		}
	}

	switch format {
	case FormatPretty:
		rendered, err := tui.RenderReport(res)
		if err != nil {
			return res, fmt.Errorf("failed to render report: %w", err)
		}
		fmt.Fprint(out, rendered)
	case FormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(runReport{Result: res, RunID: res.RunID, Waves: res.Waves, Visited: res.Visited}); err != nil {
			return res, fmt.Errorf("failed to encode result: %w", err)
		}
	default:
		return res, fmt.Errorf("unknown format %q", opts.Format)
	}

	if opts.Mermaid {
		fmt.Fprintln(out)
		fmt.Fprint(out, graph.GenerateMermaid(runner.Graph(), graph.OverlayFromResult(res)))
	}

	if !res.IsSuccess() {
		return res, ErrRunFailed
	}
	return res, nil
}
