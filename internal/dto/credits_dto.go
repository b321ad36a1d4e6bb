package dto

type CreditsResponse struct {
	CreditsUsed FlexInt `json:"credits_used"`
	PlanCredits FlexInt `json:"plan_credits"`
}
