// Package http implements the HTTP handlers of the dashboard. Handlers are
// thin: they parse query parameters, call the dashboard or health service and
// format the result.
//
// # Routes
//
//	GET  /dashboard?view=<slug>            HTML page
//	GET  /api/data/views                   menu options
//	GET  /api/data/views/{view}            rendered view model
//	GET  /api/data/categories              revenue summary (sort, order, limit)
//	GET  /api/data/reviews                 review summary (sort, order, limit)
//	GET  /api/data/tiers                   Low/High Sales classification
//	GET  /api/data/dataset                 loaded dataset description
//	GET  /api/data/export/{summary}        CSV or XLSX download (format)
//	POST /api/log/client                   browser error reports
//	GET  /api/health[/ready|/live]         probes
//	GET  /api/version                      build information
//	GET  /metrics                          Prometheus exposition
//
// JSON responses use the envelope
//
//	{"status": "success", "data": ..., "count": n}
//
// # Error Handling
//
// Errors are RFC 7807 problem documents written by errors.ErrorHandler:
//
//	{
//	    "type": "/errors/view/not-found",
//	    "title": "Not Found",
//	    "status": 404,
//	    "detail": "view \"trends\" not found",
//	    "instance": "/api/data/views/trends"
//	}
//
// # Testing
//
// Handlers are tested with httptest against testify mocks of the service
// interfaces.
package http
