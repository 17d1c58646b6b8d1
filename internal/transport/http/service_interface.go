package http

import (
	"context"
	"io"

	"ecomdash/internal/presenter"
	"ecomdash/internal/services"
	"ecomdash/pkg/contracts/domain"
)

// DashboardServiceInterface defines the dashboard operations the handlers need
type DashboardServiceInterface interface {
	Views(ctx context.Context) []services.ViewInfo
	RenderView(ctx context.Context, slug string) (presenter.Page, error)
	Categories(ctx context.Context, q services.SummaryQuery) ([]domain.CategorySummary, error)
	Reviews(ctx context.Context, q services.SummaryQuery) ([]domain.ReviewSummary, error)
	Tiers(ctx context.Context) (domain.TierReport, error)
	Export(ctx context.Context, w io.Writer, req services.ExportRequest) error
	DatasetInfo(ctx context.Context) services.DatasetInfo
}

// HealthServiceInterface defines the health probes
type HealthServiceInterface interface {
	HealthCheck(ctx context.Context) services.HealthStatus
	ReadinessCheck(ctx context.Context) services.HealthStatus
	LivenessCheck(ctx context.Context) services.HealthStatus
	Version() map[string]interface{}
}

var (
	_ DashboardServiceInterface = (*services.DashboardService)(nil)
	_ HealthServiceInterface    = (*services.HealthService)(nil)
)
