package ports

import (
	"context"

	"github.com/bnema/checkin-cli/internal/domain"
)

// SiteRepository stores named site profiles.
type SiteRepository interface {
	GetByName(ctx context.Context, name string) (domain.Site, error)
	List(ctx context.Context) ([]domain.Site, error)
	Save(ctx context.Context, site domain.Site) error
}
