// Package app wires the dashboard together and manages its lifecycle.
//
// # Initialization Flow
//
//	1. Load configuration from environment and an optional YAML file
//	2. Initialize logging and OpenTelemetry
//	3. Load the transactions file (fatal on failure)
//	4. Create the dashboard and health services
//	5. Build the chi router with middleware and handlers
//	6. Start the HTTP server and wait for SIGINT/SIGTERM
//
// # Usage
//
//	application, err := app.NewApplication()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := application.Run(); err != nil {
//	    log.Fatal(err)
//	}
package app
