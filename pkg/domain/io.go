package domain

// Input is the plain request record built by the transport and consumed by a run.
type Input struct {
	Method  string            `json:"method"`
	Path    string            `json:"path"`
	Query   map[string]string `json:"query"`
	Params  map[string]string `json:"params"`
	Body    any               `json:"body"`
	Headers map[string]string `json:"headers"`
}

// AsMap returns the input as a dynamic value, the shape stored under "request".
func (in Input) AsMap() map[string]any {
	return map[string]any{
		"method":  in.Method,
		"path":    in.Path,
		"query":   stringMap(in.Query),
		"params":  stringMap(in.Params),
		"body":    in.Body,
		"headers": stringMap(in.Headers),
	}
}

func stringMap(m map[string]string) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Status values of a Result.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// MessageNoEntryPoint is the error reported for a graph without an api node.
const MessageNoEntryPoint = "No API Entry Point found"

// MessageNoResponse is reported when traversal ends without a response node.
const MessageNoResponse = "Workflow completed without specific response"

// Result is the terminal record of one run.
//
// A response-node termination fills Response and Logs. A fall-through termination
// fills Message, Logs and Context. A node failure fills Error and Logs. A graph
// without an entry node only fills Error and leaves Status empty.
type Result struct {
	Status   string         `json:"status,omitempty"`
	Response any            `json:"response,omitempty"`
	Message  string         `json:"message,omitempty"`
	Error    string         `json:"error,omitempty"`
	Logs     []string       `json:"logs,omitempty"`
	Context  map[string]any `json:"context,omitempty"`

	// Responded is true when a response outcome ended the run.
	Responded bool `json:"-"`
	// Waves is the number of waves traversed.
	Waves int `json:"-"`
	// Visited lists executed node ids in execution order, repeats included.
	Visited []string `json:"-"`
	// RunID correlates the result with structured logs.
	RunID string `json:"-"`
}

// IsSuccess reports whether the transport should answer with a normal status.
func (r Result) IsSuccess() bool {
	return r.Status == StatusSuccess
}
