package runtime

import (
	"fmt"
	"strings"

	"github.com/aretw0/flowserve/pkg/domain"
	"github.com/aretw0/flowserve/pkg/schema"
)

type interfaceConfig struct {
	Fields []schema.Field `mapstructure:"fields"`
}

// executeInterface validates the request body. A failure ends the run with a
// "Bad Request" payload; the run itself still succeeds.
func executeInterface(rs *runState, node domain.Node) (domain.Outcome, error) {
	var cfg interfaceConfig
	if err := decodeData(node, nil, &cfg); err != nil {
		return domain.NoOutcome(), err
	}

	raw, _ := rs.vars.Get("body")
	body, _ := raw.(map[string]any)

	report := schema.Check(cfg.Fields, body)
	if report.OK() {
		rs.trace.Add("Interface Validation Passed")
		return domain.NoOutcome(), nil
	}

	invalid := make([]string, 0, len(report.Invalid))
	for _, verr := range report.Invalid {
		invalid = append(invalid, fmt.Sprintf("%s (expected %s)", verr.Key, verr.Expected))
	}

	message := validationMessage(report.Missing, invalid)
	rs.trace.Add("Interface Validation Failed: %s", message)
	return domain.ResponseOutcome(map[string]any{
		"error":   "Bad Request",
		"message": message,
		"details": map[string]any{
			"missing": report.Missing,
			"invalid": invalid,
		},
	}), nil
}

func validationMessage(missing, invalid []string) string {
	var b strings.Builder
	b.WriteString("Validation Error: ")
	if len(missing) > 0 {
		fmt.Fprintf(&b, "Missing fields: %s. ", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		fmt.Fprintf(&b, "Invalid types: %s.", strings.Join(invalid, ", "))
	}
	return strings.TrimSpace(b.String())
}

type responseConfig struct {
	ResponseType string `mapstructure:"responseType"`
	Body         any    `mapstructure:"body"`
}

// executeResponse produces the terminal payload.
//
// In "variable" mode the body names a variable whose value is returned as is.
// Otherwise the body is JSON text whose placeholders are substituted before it is
// parsed; text that fails to parse yields a raw/error payload.
func executeResponse(rs *runState, node domain.Node) (domain.Outcome, error) {
	var cfg responseConfig
	if err := decodeData(node, map[string]any{"responseType": "json", "body": "{}"}, &cfg); err != nil {
		return domain.NoOutcome(), err
	}

	if cfg.ResponseType == "variable" {
		name, _ := cfg.Body.(string)
		value, found := rs.vars.Get(name)
		if !found && strings.HasPrefix(name, "{") && strings.HasSuffix(name, "}") {
			value, _ = rs.vars.Get(strings.Trim(name, "{}"))
		}
		return domain.ResponseOutcome(value), nil
	}

	text, ok := cfg.Body.(string)
	if !ok {
		text = Stringify(cfg.Body)
	}

	payload, err := rs.resolver.RenderJSON(text)
	if err != nil {
		rs.trace.Add("Error parsing response body: %v", err)
		return domain.ResponseOutcome(map[string]any{
			"raw":   text,
			"error": "JSON parse error",
		}), nil
	}
	return domain.ResponseOutcome(payload), nil
}
