package pipeline

import (
	"encoding/json"
	"fmt"
	"time"

	"svfront/internal/diag"
	"svfront/internal/sourcemap"
)

// PhaseReport records how long one named phase of a run took.
type PhaseReport struct {
	Name string  `json:"name"`
	MS   float64 `json:"ms"`
}

// Timer accumulates PhaseReports across a run's phases (preprocess+parse,
// elaborate), built up one phase at a time.
type Timer struct {
	phases []PhaseReport
}

// Phase times fn under name and records its duration.
func (t *Timer) Phase(name string, fn func()) {
	start := time.Now()
	fn()
	t.phases = append(t.phases, PhaseReport{Name: name, MS: float64(time.Since(start).Microseconds()) / 1000})
}

func (t *Timer) total() float64 {
	var sum float64
	for _, p := range t.phases {
		sum += p.MS
	}
	return sum
}

type timingPayload struct {
	Kind    string        `json:"kind"`
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// AppendDiagnostic attaches t's accumulated phase timings to bag as one
// informational diagnostic, the JSON payload carried as a Note.
func (t *Timer) AppendDiagnostic(bag *diag.Bag) {
	if bag == nil || len(t.phases) == 0 {
		return
	}
	payload := timingPayload{Kind: "pipeline", TotalMS: t.total(), Phases: t.phases}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	entry := diag.Diagnostic{
		Severity: diag.SevInfo,
		Code:     diag.ObsTimings,
		Message:  fmt.Sprintf("timings (pipeline): total %.2f ms", payload.TotalMS),
		Notes:    []diag.Note{{Span: sourcemap.Span{}, Msg: string(data)}},
	}
	if bag.Add(entry) {
		return
	}
	overflow := diag.NewBag(len(bag.Items()) + 1)
	overflow.Add(entry)
	bag.Merge(overflow)
}
