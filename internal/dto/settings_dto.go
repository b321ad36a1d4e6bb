package dto

type AgentToggle struct {
	Agent   string `json:"agent"`
	Enabled bool   `json:"enabled"`
}

type UpdateAgentRequest struct {
	Agent   string `json:"agent" validate:"required"`
	Enabled *bool  `json:"enabled" validate:"required"`
}
