package puzzles

// PromptItem is one selectable element inside a prompt (a waste object, a bin).
type PromptItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Icon  string `json:"icon,omitempty"`
}

// Prompt describes one stage to the client. Type tags the variant so the
// frontend can pick a rendering; the optional fields carry variant-specific
// configuration.
type Prompt struct {
	Type        string         `json:"type"`
	Title       string         `json:"title"`
	Instruction string         `json:"instruction"`
	Objects     []PromptItem   `json:"objects,omitempty"`
	Bins        []PromptItem   `json:"bins,omitempty"`
	Fixed       map[string]int `json:"fixed,omitempty"`
	Target      int            `json:"target,omitempty"`
	Min         int            `json:"min,omitempty"`
	Max         int            `json:"max,omitempty"`
	Step        int            `json:"step,omitempty"`
}

// Puzzle is one stage's stateless strategy. Implementations must be pure:
// Prompt depends only on stage identity, and Validate must treat malformed or
// missing submission fields as a wrong answer, never as a reason to panic.
type Puzzle interface {
	Prompt() Prompt
	Validate(submission map[string]any) bool
	Hints() []string
	// Debrief returns the educational wrap-up shown on success, or "" if none.
	Debrief() string
	Points() int
}

// asString pulls a string field out of a raw submission, tolerating absence
// and wrong types.
func asString(submission map[string]any, key string) string {
	if submission == nil {
		return ""
	}
	s, _ := submission[key].(string)
	return s
}

// asInt pulls a numeric field out of a raw submission. JSON numbers decode to
// float64; numeric strings from form-like clients are accepted too.
func asInt(submission map[string]any, key string) (int, bool) {
	if submission == nil {
		return 0, false
	}
	switch v := submission[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case string:
		n := 0
		if v == "" {
			return 0, false
		}
		for _, c := range v {
			if c < '0' || c > '9' {
				return 0, false
			}
			n = n*10 + int(c-'0')
		}
		return n, true
	}
	return 0, false
}
