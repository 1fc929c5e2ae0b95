package reasoning

// KindCount is the number of steps of one kind.
type KindCount struct {
	Kind  StepKind `json:"kind"`
	Count int      `json:"count"`
}

// Summary aggregates a step sequence for display.
type Summary struct {
	Total       int         `json:"total"`
	Counts      []KindCount `json:"counts"`
	FinalAnswer string      `json:"final_answer,omitempty"`
}

// Summarize counts steps per kind (in StepKinds order, omitting absent
// kinds) and picks the last conclusion step as the final answer.
func Summarize(steps []Step) Summary {
	counts := make(map[StepKind]int, len(steps))
	var final string
	for _, st := range steps {
		counts[st.Kind]++
		if st.Kind == KindConclusion {
			final = st.Content
		}
	}

	sum := Summary{Total: len(steps), FinalAnswer: final}
	for _, k := range StepKinds() {
		if n := counts[k]; n > 0 {
			sum.Counts = append(sum.Counts, KindCount{Kind: k, Count: n})
		}
	}
	return sum
}

// Share returns the fraction of steps that are of kind k (0 when empty).
func (s Summary) Share(k StepKind) float64 {
	if s.Total == 0 {
		return 0
	}
	for _, c := range s.Counts {
		if c.Kind == k {
			return float64(c.Count) / float64(s.Total)
		}
	}
	return 0
}
