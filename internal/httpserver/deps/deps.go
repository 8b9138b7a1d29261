package deps

import (
	"context"
	"time"

	"github.com/veloria/catalog-api/internal/domain"
	"github.com/veloria/catalog-api/internal/logger"
	redisstore "github.com/veloria/catalog-api/internal/store/redis"
)

// ProductStore is the product persistence surface the handlers consume.
type ProductStore interface {
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string) error
}

// BlogStore is the blog persistence surface the handlers consume.
type BlogStore interface {
	FindByID(ctx context.Context, id string) (*domain.BlogPost, error)
	List(ctx context.Context) ([]*domain.BlogPost, error)
	Create(ctx context.Context, b *domain.BlogPost) error
	Update(ctx context.Context, b *domain.BlogPost) error
	Delete(ctx context.Context, id string) error
}

// VisitorSource serves visit rollups. Nil when visitor tracking is disabled.
type VisitorSource interface {
	RecordVisit(ctx context.Context, clientIP string, now time.Time) error
	MonthlyVisitors(ctx context.Context, now time.Time) (*redisstore.MonthlyStats, error)
}

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	TimeNow   func() time.Time // for testing, defaults to time.Now

	Products ProductStore
	Blogs    BlogStore
	Visitors VisitorSource // nil = visitor tracking disabled

	// ReadyCheck reports whether the backing stores are reachable.
	ReadyCheck func(ctx context.Context) error

	TrustProxy bool
	SiteName   string

	// Rate limiting applied to mutating endpoints
	RateLimitRPS   float64
	RateLimitBurst int
}
