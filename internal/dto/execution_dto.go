package dto

// Execution statuses as reported upstream. Status is monotonic for an id:
// running moves to success or error and never reverts.
const (
	ExecutionRunning = "running"
	ExecutionSuccess = "success"
	ExecutionError   = "error"
)

type TraceStep struct {
	Label     string `json:"label"`
	Summary   string `json:"summary"`
	Timestamp string `json:"ts,omitempty"`
}

type ExecutionResponse struct {
	ID           string      `json:"id"`
	WorkflowName string      `json:"workflow_name"`
	Status       string      `json:"status"`
	StartedAt    string      `json:"started_at"`
	StoppedAt    string      `json:"stopped_at,omitempty"`
	DurationMs   int64       `json:"duration_ms"`
	Mode         string      `json:"mode"`
	Trace        []TraceStep `json:"trace"`
}
