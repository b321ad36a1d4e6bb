package service

import (
	"errors"

	"github.com/benvansteenbergen/console-sub000/internal/pkg/apperror"
)

// webhookResult is the {success, error} envelope the webhook endpoints wrap
// their payloads in.
type webhookResult struct {
	Success *bool  `json:"success"`
	Error   string `json:"error"`
}

// checkResult folds an explicit upstream failure flag into the error taxonomy.
// An absent success field counts as success: several workflows return bare
// payloads.
func checkResult(res webhookResult) error {
	if res.Success != nil && !*res.Success {
		msg := res.Error
		if msg == "" {
			msg = "upstream reported failure"
		}
		return apperror.UpstreamUnavailable(errors.New(msg))
	}
	return nil
}
