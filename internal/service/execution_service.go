package service

import (
	"context"
	"net/http"
	"time"

	"github.com/benvansteenbergen/console-sub000/internal/dto"
	"github.com/benvansteenbergen/console-sub000/internal/upstream"
)

type IExecutionService interface {
	// Status returns the current state of one workflow execution. 404 from the
	// backend passes through as 404.
	Status(ctx context.Context, token, id string) (*dto.ExecutionResponse, error)
}

type executionService struct {
	client *upstream.Client
}

func NewExecutionService(client *upstream.Client) IExecutionService {
	return &executionService{client: client}
}

type upstreamExecution struct {
	ID           string          `json:"id"`
	WorkflowName string          `json:"workflowName"`
	Status       string          `json:"status"`
	StartedAt    string          `json:"startedAt"`
	StoppedAt    string          `json:"stoppedAt"`
	Mode         string          `json:"mode"`
	Trace        []dto.TraceStep `json:"trace"`
}

func (s *executionService) Status(ctx context.Context, token, id string) (*dto.ExecutionResponse, error) {
	var res upstreamExecution
	err := s.client.Do(ctx, http.MethodGet, s.client.Rest("/executions/"+id, nil), token, nil, &res)
	if err != nil {
		return nil, err
	}

	trace := res.Trace
	if trace == nil {
		trace = []dto.TraceStep{}
	}

	return &dto.ExecutionResponse{
		ID:           res.ID,
		WorkflowName: res.WorkflowName,
		Status:       res.Status,
		StartedAt:    res.StartedAt,
		StoppedAt:    res.StoppedAt,
		DurationMs:   durationMs(res.StartedAt, res.StoppedAt),
		Mode:         res.Mode,
		Trace:        trace,
	}, nil
}

func durationMs(startedAt, stoppedAt string) int64 {
	start, err := time.Parse(time.RFC3339, startedAt)
	if err != nil {
		return 0
	}
	stop, err := time.Parse(time.RFC3339, stoppedAt)
	if err != nil {
		return 0
	}
	return stop.Sub(start).Milliseconds()
}
