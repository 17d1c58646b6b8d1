// Package shared holds helpers used by more than one package of the
// dashboard. Today that is only testutil: the buffered slog handler and the
// transaction fixtures shared by the loader, service, handler and app tests.
package shared
