package domain

// OutcomeKind tags the variant held by an Outcome.
type OutcomeKind int

const (
	// OutcomeNone means the node has nothing to say about routing.
	OutcomeNone OutcomeKind = iota
	// OutcomeLogic carries the boolean result of a logic node.
	OutcomeLogic
	// OutcomeLoop carries the "do"/"done" decision of a loop node.
	OutcomeLoop
	// OutcomeResponse carries a terminal payload.
	OutcomeResponse
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeLogic:
		return "logic"
	case OutcomeLoop:
		return "loop"
	case OutcomeResponse:
		return "response"
	default:
		return "none"
	}
}

// LoopDecision is the result of one loop node visit.
type LoopDecision string

const (
	LoopDo   LoopDecision = HandleDo
	LoopDone LoopDecision = HandleDone
)

// Outcome is the typed result of executing one node.
// Only the field matching Kind is meaningful.
type Outcome struct {
	Kind    OutcomeKind
	Branch  bool
	Loop    LoopDecision
	Payload any
}

// NoOutcome is the zero outcome.
func NoOutcome() Outcome { return Outcome{} }

// LogicOutcome wraps a condition result.
func LogicOutcome(result bool) Outcome {
	return Outcome{Kind: OutcomeLogic, Branch: result}
}

// LoopOutcome wraps a loop decision.
func LoopOutcome(decision LoopDecision) Outcome {
	return Outcome{Kind: OutcomeLoop, Loop: decision}
}

// ResponseOutcome wraps a terminal payload.
func ResponseOutcome(payload any) Outcome {
	return Outcome{Kind: OutcomeResponse, Payload: payload}
}

// IsTerminal reports whether the outcome ends the run.
func (o Outcome) IsTerminal() bool {
	return o.Kind == OutcomeResponse
}

// Handle returns the edge handle selected by the outcome, or "" when the
// outcome does not select a branch.
func (o Outcome) Handle() string {
	switch o.Kind {
	case OutcomeLogic:
		if o.Branch {
			return HandleTrue
		}
		return HandleFalse
	case OutcomeLoop:
		return string(o.Loop)
	default:
		return ""
	}
}
