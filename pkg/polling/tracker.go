package polling

import (
	"strconv"

	"github.com/benvansteenbergen/console-sub000/internal/dto"
)

// ObservedStep is a trace step annotated with whether this tracker has seen
// it before. Fresh steps get the animated reveal in the console; replayed
// ones render immediately.
type ObservedStep struct {
	dto.TraceStep
	Fresh bool
}

// Tracker remembers which trace steps have been observed across polls of the
// same execution. Step identity is the timestamp when present, the positional
// index otherwise; trace array order is step order, no reordering or
// deduplication happens beyond freshness.
type Tracker struct {
	seen map[string]struct{}
}

func NewTracker() *Tracker {
	return &Tracker{seen: make(map[string]struct{})}
}

func (t *Tracker) Observe(trace []dto.TraceStep) []ObservedStep {
	out := make([]ObservedStep, 0, len(trace))
	for i, step := range trace {
		id := step.Timestamp
		if id == "" {
			id = "idx:" + strconv.Itoa(i)
		}
		_, known := t.seen[id]
		if !known {
			t.seen[id] = struct{}{}
		}
		out = append(out, ObservedStep{TraceStep: step, Fresh: !known})
	}
	return out
}
