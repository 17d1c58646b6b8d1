package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"ecomdash/internal/analytics"
	"ecomdash/internal/dataprocessing"
	"ecomdash/internal/exporter"
	"ecomdash/internal/infrastructure"
	"ecomdash/internal/presenter"
	"ecomdash/pkg/contracts/domain"
)

// MaxQueryLimit bounds SummaryQuery.Limit
const MaxQueryLimit = 1000

// ViewInfo describes one menu option
type ViewInfo struct {
	Slug    string `json:"slug"`
	Label   string `json:"label"`
	Default bool   `json:"default"`
}

// SummaryQuery selects the ordering and size of a summary listing. An empty
// Sort keeps the grouping order (category ascending).
type SummaryQuery struct {
	Sort  string `json:"sort" validate:"omitempty,oneof=revenue items"`
	Order string `json:"order" validate:"omitempty,oneof=asc desc"`
	Limit int    `json:"limit" validate:"gte=0,lte=1000"`
}

// ExportRequest names the summary and file format of a download
type ExportRequest struct {
	Summary string
	Format  string
	Query   SummaryQuery
}

// DatasetInfo describes the resident dataset
type DatasetInfo struct {
	Loaded         bool      `json:"loaded"`
	Source         string    `json:"source"`
	Format         string    `json:"format"`
	RowsRead       int       `json:"rows_read"`
	SkippedRows    int       `json:"skipped_rows"`
	Transactions   int       `json:"transactions"`
	Categories     int       `json:"categories"`
	LoadedAt       time.Time `json:"loaded_at"`
	LoadDurationMS int64     `json:"load_duration_ms"`
}

// DashboardService computes views, summaries and exports from the dataset
// loaded at startup. Every call recomputes from the resident transactions.
type DashboardService struct {
	dataset   *dataprocessing.Dataset
	presenter *presenter.Presenter
	exporter  *exporter.Exporter
	metrics   *infrastructure.BusinessMetrics
	logger    *slog.Logger
}

// NewDashboardService creates a dashboard service over a loaded dataset.
// metrics may be nil.
func NewDashboardService(dataset *dataprocessing.Dataset, metrics *infrastructure.BusinessMetrics, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "dashboard_service"))

	logger.Info("DashboardService initialized",
		slog.Int("transactions", dataset.Len()),
		slog.Int("categories", dataset.Categories()))

	return &DashboardService{
		dataset:   dataset,
		presenter: presenter.New(),
		exporter:  exporter.New(logger),
		metrics:   metrics,
		logger:    logger,
	}
}

// Views returns the menu options in order. The first one is the default.
func (s *DashboardService) Views(ctx context.Context) []ViewInfo {
	kinds := presenter.AllViews()
	views := make([]ViewInfo, 0, len(kinds))
	for i, k := range kinds {
		views = append(views, ViewInfo{Slug: k.Slug(), Label: k.Label(), Default: i == 0})
	}
	return views
}

// RenderView renders the view named by slug or menu label
func (s *DashboardService) RenderView(ctx context.Context, slug string) (presenter.Page, error) {
	kind, err := presenter.ParseViewKind(slug)
	if err != nil {
		return presenter.Page{}, fmt.Errorf("%w: %q", ErrUnknownView, slug)
	}

	txs, err := s.transactions(ctx)
	if err != nil {
		return presenter.Page{}, err
	}

	start := time.Now()
	page, err := s.presenter.Render(kind, dataprocessing.SummarizeRevenue(txs), dataprocessing.SummarizeReviews(txs))
	infrastructure.RecordViewRender(ctx, s.metrics, kind.Slug(), time.Since(start), err)
	if err != nil {
		logServiceError(ctx, s.logger, "render_view", "failed to render view", err, slog.String("view", kind.Slug()))
		return presenter.Page{}, err
	}

	s.logger.DebugContext(ctx, "view rendered",
		slog.String("view", kind.Slug()),
		slog.Duration("duration", time.Since(start)))
	return page, nil
}

// Categories returns the revenue summary ordered and limited by q
func (s *DashboardService) Categories(ctx context.Context, q SummaryQuery) ([]domain.CategorySummary, error) {
	txs, err := s.transactions(ctx)
	if err != nil {
		return nil, err
	}
	return applyQuery(dataprocessing.SummarizeRevenue(txs), q)
}

// Reviews returns the review summary ordered and limited by q
func (s *DashboardService) Reviews(ctx context.Context, q SummaryQuery) ([]domain.ReviewSummary, error) {
	txs, err := s.transactions(ctx)
	if err != nil {
		return nil, err
	}
	return applyQuery(dataprocessing.SummarizeReviews(txs), q)
}

// Tiers classifies every category into Low or High Sales
func (s *DashboardService) Tiers(ctx context.Context) (domain.TierReport, error) {
	txs, err := s.transactions(ctx)
	if err != nil {
		return domain.TierReport{}, err
	}
	return analytics.ClassifyTiers(dataprocessing.SummarizeReviews(txs)), nil
}

// Export writes the requested summary to w
func (s *DashboardService) Export(ctx context.Context, w io.Writer, req ExportRequest) error {
	summary, err := exporter.ParseSummary(req.Summary)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownSummary, req.Summary)
	}
	format, err := exporter.ParseFormat(req.Format)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, req.Format)
	}

	var sheet exporter.Sheet
	switch summary {
	case exporter.SummaryCategories:
		rows, err := s.Categories(ctx, req.Query)
		if err != nil {
			return err
		}
		sheet = exporter.CategorySheet(rows)
	case exporter.SummaryReviews:
		rows, err := s.Reviews(ctx, req.Query)
		if err != nil {
			return err
		}
		sheet = exporter.ReviewSheet(rows)
	case exporter.SummaryTiers:
		report, err := s.Tiers(ctx)
		if err != nil {
			return err
		}
		sheet = exporter.TierSheet(report)
	}

	err = s.exporter.Export(w, format, sheet)
	infrastructure.RecordExport(ctx, s.metrics, string(summary), string(format), err)
	if err != nil {
		logServiceError(ctx, s.logger, "export", "failed to export summary", err,
			slog.String("summary", string(summary)),
			slog.String("format", string(format)))
		return err
	}
	return nil
}

// DatasetInfo describes the resident dataset
func (s *DashboardService) DatasetInfo(ctx context.Context) DatasetInfo {
	if s.dataset == nil {
		return DatasetInfo{}
	}
	return DatasetInfo{
		Loaded:         true,
		Source:         s.dataset.Source,
		Format:         s.dataset.Format,
		RowsRead:       s.dataset.RowsRead,
		SkippedRows:    s.dataset.SkippedRows,
		Transactions:   s.dataset.Len(),
		Categories:     s.dataset.Categories(),
		LoadedAt:       s.dataset.LoadedAt,
		LoadDurationMS: s.dataset.Duration.Milliseconds(),
	}
}

func (s *DashboardService) transactions(ctx context.Context) ([]domain.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.dataset == nil {
		return nil, ErrDatasetNotLoaded
	}
	return s.dataset.Transactions, nil
}

// applyQuery sorts and limits rows. Sort and Order are expected to be
// validated already; unknown values are reported as ErrInvalidQuery.
func applyQuery[T analytics.Measured](rows []T, q SummaryQuery) ([]T, error) {
	if q.Sort != "" {
		key, err := analytics.ParseSortKey(q.Sort)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
		}
		dir := analytics.Descending
		if q.Order != "" {
			if dir, err = analytics.ParseDirection(q.Order); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
			}
		}
		rows = analytics.Sort(rows, key, dir)
	}

	if q.Limit < 0 || q.Limit > MaxQueryLimit {
		return nil, fmt.Errorf("%w: limit must be between 0 and %d", ErrInvalidQuery, MaxQueryLimit)
	}
	return analytics.Limit(rows, q.Limit), nil
}
