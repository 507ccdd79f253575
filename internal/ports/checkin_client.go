package ports

import (
	"context"

	"github.com/bnema/checkin-cli/internal/domain"
)

// CheckinResponse is the raw outcome of the check-in call, left
// unclassified for the domain layer.
type CheckinResponse struct {
	StatusCode int
	Body       string
}

// CheckinClient performs the direct HTTP calls against a forum using a
// bridged browser session.
type CheckinClient interface {
	PerformCheckin(ctx context.Context, site domain.Site, session domain.AuthenticatedSession) (CheckinResponse, error)
	FetchStatus(ctx context.Context, site domain.Site, session domain.AuthenticatedSession) (domain.CheckinStatus, error)
}
