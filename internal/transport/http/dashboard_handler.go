package http

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	apierrors "ecomdash/internal/errors"
	"ecomdash/internal/middleware"
	"ecomdash/internal/presenter"
	"ecomdash/internal/services"
	"ecomdash/web"
)

const dashboardTemplate = "dashboard_page"

// viewOption is one entry of the sidebar selector
type viewOption struct {
	Slug     string
	Label    string
	Selected bool
}

// dashboardPage is the template model of GET /dashboard
type dashboardPage struct {
	Title         string
	SidebarTitle  string
	SelectorLabel string
	Views         []viewOption
	Page          presenter.Page
}

// DashboardHandler renders the HTML dashboard from the embedded templates
type DashboardHandler struct {
	service      DashboardServiceInterface
	templates    *template.Template
	static       fs.FS
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDashboardHandler parses the embedded templates. A template that fails to
// parse is a startup error.
func NewDashboardHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) (*DashboardHandler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if errorHandler == nil {
		errorHandler = apierrors.NewErrorHandler(logger, false)
	}

	t, err := template.ParseFS(web.TemplatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse dashboard templates: %w", err)
	}
	static, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("failed to mount static assets: %w", err)
	}

	return &DashboardHandler{
		service:      service,
		templates:    t,
		static:       static,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
	}, nil
}

// ServeDashboard handles GET /dashboard?view=<slug>. Without a view the first
// menu option is shown.
func (h *DashboardHandler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	views := h.service.Views(r.Context())
	selected := r.URL.Query().Get("view")
	if selected == "" && len(views) > 0 {
		selected = views[0].Slug
	}

	page, err := h.service.RenderView(r.Context(), selected)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render dashboard",
			slog.String("error", err.Error()),
			slog.String("view", selected),
			slog.String("request_id", reqID),
		)
		switch {
		case errors.Is(err, services.ErrUnknownView):
			h.errorHandler.HandleError(w, r, apierrors.ViewNotFoundError(selected, viewSlugs()))
		case errors.Is(err, services.ErrDatasetNotLoaded):
			h.errorHandler.HandleError(w, r, apierrors.ErrDatasetNotLoaded)
		default:
			h.errorHandler.HandleError(w, r, apierrors.RenderError(err))
		}
		return
	}

	options := make([]viewOption, 0, len(views))
	for _, v := range views {
		options = append(options, viewOption{Slug: v.Slug, Label: v.Label, Selected: v.Slug == page.View})
	}

	var buf bytes.Buffer
	err = h.templates.ExecuteTemplate(&buf, dashboardTemplate, dashboardPage{
		Title:         presenter.PageTitle,
		SidebarTitle:  presenter.SidebarTitle,
		SelectorLabel: presenter.SelectorLabel,
		Views:         options,
		Page:          page,
	})
	if err != nil {
		h.logger.ErrorContext(r.Context(), "dashboard template execution failed",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
		)
		h.errorHandler.HandleError(w, r, apierrors.RenderError(err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.WarnContext(r.Context(), "failed to write dashboard response",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
		)
	}
}

// StaticHandler serves the embedded css and js under /static/
func (h *DashboardHandler) StaticHandler() http.Handler {
	static := http.StripPrefix("/static/", http.FileServer(http.FS(h.static)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		static.ServeHTTP(w, r)
	})
}

// RedirectToDashboard redirects root requests to the dashboard
func RedirectToDashboard(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/dashboard", http.StatusTemporaryRedirect)
}
