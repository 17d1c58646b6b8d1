package http

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"ecomdash/internal/analytics"
	apierrors "ecomdash/internal/errors"
	"ecomdash/internal/exporter"
	"ecomdash/internal/middleware"
	"ecomdash/internal/presenter"
	"ecomdash/internal/services"
)

// DataHandler serves the dashboard data API with RFC 7807 errors
type DataHandler struct {
	service      DashboardServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validator    *middleware.Validator
	params       *middleware.QueryParamValidator
}

// NewDataHandler creates a new data handler
func NewDataHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DataHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if errorHandler == nil {
		errorHandler = apierrors.NewErrorHandler(logger, false)
	}
	return &DataHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "data_handler")),
		errorHandler: errorHandler,
		validator:    middleware.NewValidator(),
		params:       middleware.NewQueryParamValidator(logger, errorHandler),
	}
}

// Routes returns the data API routes
func (h *DataHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/views", h.GetViews)
	r.Get("/views/{view}", h.GetView)
	r.Get("/categories", h.GetCategories)
	r.Get("/reviews", h.GetReviews)
	r.Get("/tiers", h.GetTiers)
	r.Get("/dataset", h.GetDataset)
	r.Get("/export/{summary}", h.ExportSummary)

	return r
}

// GetViews handles GET /api/data/views
func (h *DataHandler) GetViews(w http.ResponseWriter, r *http.Request) {
	views := h.service.Views(r.Context())

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   views,
		"count":  len(views),
	})
}

// GetView handles GET /api/data/views/{view}
func (h *DataHandler) GetView(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())
	view := chi.URLParam(r, "view")

	h.logger.InfoContext(r.Context(), "rendering view",
		slog.String("request_id", reqID),
		slog.String("view", view),
	)

	page, err := h.service.RenderView(r.Context(), view)
	if err != nil {
		h.handleServiceError(w, r, "render view", view, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   page,
	})
}

// GetCategories handles GET /api/data/categories
func (h *DataHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	q, ok := h.parseQuery(w, r)
	if !ok {
		return
	}

	h.logger.InfoContext(r.Context(), "fetching category summary",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("sort", q.Sort),
		slog.String("order", q.Order),
		slog.Int("limit", q.Limit),
	)

	rows, err := h.service.Categories(r.Context(), q)
	if err != nil {
		h.handleServiceError(w, r, "get categories", "", err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   rows,
		"count":  len(rows),
	})
}

// GetReviews handles GET /api/data/reviews
func (h *DataHandler) GetReviews(w http.ResponseWriter, r *http.Request) {
	q, ok := h.parseQuery(w, r)
	if !ok {
		return
	}

	h.logger.InfoContext(r.Context(), "fetching review summary",
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("sort", q.Sort),
		slog.String("order", q.Order),
		slog.Int("limit", q.Limit),
	)

	rows, err := h.service.Reviews(r.Context(), q)
	if err != nil {
		h.handleServiceError(w, r, "get reviews", "", err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   rows,
		"count":  len(rows),
	})
}

// GetTiers handles GET /api/data/tiers
func (h *DataHandler) GetTiers(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Tiers(r.Context())
	if err != nil {
		h.handleServiceError(w, r, "get tiers", "", err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   report,
		"count":  len(report.Categories),
	})
}

// GetDataset handles GET /api/data/dataset
func (h *DataHandler) GetDataset(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   h.service.DatasetInfo(r.Context()),
	})
}

// ExportSummary handles GET /api/data/export/{summary}?format=csv|xlsx.
// The file is built in memory so a failure can still be answered with a
// problem document.
func (h *DataHandler) ExportSummary(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())
	summary := chi.URLParam(r, "summary")

	format := r.URL.Query().Get("format")
	if format == "" {
		format = string(exporter.FormatCSV)
	}

	q, ok := h.parseQuery(w, r)
	if !ok {
		return
	}

	h.logger.InfoContext(r.Context(), "exporting summary",
		slog.String("request_id", reqID),
		slog.String("summary", summary),
		slog.String("format", format),
	)

	var buf bytes.Buffer
	err := h.service.Export(r.Context(), &buf, services.ExportRequest{
		Summary: summary,
		Format:  format,
		Query:   q,
	})
	if err != nil {
		resource := summary
		if errors.Is(err, services.ErrUnsupportedFormat) {
			resource = format
		}
		h.handleServiceError(w, r, "export summary", resource, err)
		return
	}

	// Both parse calls succeeded inside Export, so these cannot fail here.
	s, _ := exporter.ParseSummary(summary)
	f, _ := exporter.ParseFormat(format)

	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exporter.Filename(s, f)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.WarnContext(r.Context(), "failed to write export response",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
		)
	}
}

// parseQuery reads sort, order and limit. On failure the problem response has
// already been written.
func (h *DataHandler) parseQuery(w http.ResponseWriter, r *http.Request) (services.SummaryQuery, bool) {
	sortKeys := make([]string, 0, len(analytics.SortKeys))
	for _, k := range analytics.SortKeys {
		sortKeys = append(sortKeys, string(k))
	}

	sort, ok := h.params.ValidateEnum(w, r, "sort", sortKeys, "")
	if !ok {
		return services.SummaryQuery{}, false
	}
	order, ok := h.params.ValidateEnum(w, r, "order", []string{string(analytics.Ascending), string(analytics.Descending)}, "")
	if !ok {
		return services.SummaryQuery{}, false
	}
	limit, ok := h.params.ValidateInt(w, r, "limit", 0, services.MaxQueryLimit, 0)
	if !ok {
		return services.SummaryQuery{}, false
	}

	q := services.SummaryQuery{Sort: sort, Order: order, Limit: limit}
	if err := h.validator.ValidateStruct(q); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return services.SummaryQuery{}, false
	}
	return q, true
}

// handleServiceError maps service errors onto API errors
func (h *DataHandler) handleServiceError(w http.ResponseWriter, r *http.Request, action, resource string, err error) {
	h.logger.ErrorContext(r.Context(), "failed to "+action,
		slog.String("error", err.Error()),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	switch {
	case errors.Is(err, services.ErrUnknownView):
		h.errorHandler.HandleError(w, r, apierrors.ViewNotFoundError(resource, viewSlugs()))
	case errors.Is(err, services.ErrUnknownSummary):
		h.errorHandler.HandleError(w, r, apierrors.SummaryNotFoundError(resource, summaryNames()))
	case errors.Is(err, services.ErrUnsupportedFormat):
		h.errorHandler.HandleError(w, r, apierrors.UnsupportedFormatError(resource, formatNames()))
	case errors.Is(err, services.ErrDatasetNotLoaded):
		h.errorHandler.HandleError(w, r, apierrors.ErrDatasetNotLoaded)
	case errors.Is(err, services.ErrInvalidQuery):
		h.errorHandler.HandleError(w, r, apierrors.New(http.StatusBadRequest, apierrors.CodeInvalidRequest, err.Error()))
	default:
		h.errorHandler.HandleError(w, r, err)
	}
}

func viewSlugs() []string {
	kinds := presenter.AllViews()
	out := make([]string, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, k.Slug())
	}
	return out
}

func summaryNames() []string {
	out := make([]string, 0, len(exporter.SupportedSummaries))
	for _, s := range exporter.SupportedSummaries {
		out = append(out, string(s))
	}
	return out
}

func formatNames() []string {
	out := make([]string, 0, len(exporter.SupportedFormats))
	for _, f := range exporter.SupportedFormats {
		out = append(out, string(f))
	}
	return out
}
