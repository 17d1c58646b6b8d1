// Package services implements the business logic layer of the dashboard.
// It sits between the HTTP handlers and the loaded dataset so that handlers
// stay thin and every rule is testable without HTTP.
//
// # Services
//
//   - DashboardService: menu views, revenue and review summaries, sales tiers
//     and CSV/XLSX exports, all recomputed from the resident transactions
//   - HealthService: liveness, readiness (dataset resident) and version info
//
// # Errors
//
// Services return the sentinel errors in errors.go wrapped with detail, so
// callers match them with errors.Is:
//
//	page, err := svc.RenderView(ctx, "pie")
//	if errors.Is(err, services.ErrUnknownView) {
//	    // 404
//	}
//
// # Validation
//
// SummaryQuery carries validator tags. The transport layer validates it
// before calling in; services still reject out-of-range values with
// ErrInvalidQuery.
package services
