// Package optimization provides shared data structures for break-even search results.
package optimization

// Summary captures the result of a single break-even search.
type Summary struct {
	Scope           string   `json:"scope"`
	TargetName      string   `json:"targetName"`
	Field           string   `json:"field"`
	Original        float64  `json:"original"`
	Value           float64  `json:"value"`
	Iterations      int      `json:"iterations"`
	Converged       bool     `json:"converged"`
	Notes           []string `json:"notes,omitempty"`
	OriginalDisplay string   `json:"originalDisplay,omitempty"`
	ValueDisplay    string   `json:"valueDisplay,omitempty"`
}

// Headroom is how far the original rate sits above the break-even rate, in
// percentage points. It is zero when the search did not converge.
func (s Summary) Headroom() float64 {
	if !s.Converged {
		return 0
	}
	return s.Original - s.Value
}
