package app

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"time"
)

// browserMethod represents a method to open the browser
type browserMethod struct {
	name string
	cmd  string
	args []string
}

// openBrowser tries each platform method in turn
func openBrowser(ctx context.Context, url string) error {
	var lastErr error
	for _, method := range getBrowserOpenMethods(runtime.GOOS, url) {
		cmdCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := exec.CommandContext(cmdCtx, method.cmd, method.args...).Start()
		cancel()
		if err == nil {
			return nil
		}
		lastErr = fmt.Errorf("%s: %w", method.name, err)
	}
	return fmt.Errorf("failed to open browser: %w", lastErr)
}

// getBrowserOpenMethods returns platform-specific browser opening methods
func getBrowserOpenMethods(goos, url string) []browserMethod {
	switch goos {
	case "windows":
		return []browserMethod{
			{name: "rundll32", cmd: "rundll32", args: []string{"url.dll,FileProtocolHandler", url}},
			{name: "start_command", cmd: "cmd", args: []string{"/c", "start", "", url}},
		}
	case "darwin":
		return []browserMethod{
			{name: "open", cmd: "open", args: []string{url}},
		}
	default:
		return []browserMethod{
			{name: "xdg-open", cmd: "xdg-open", args: []string{url}},
			{name: "sensible-browser", cmd: "sensible-browser", args: []string{url}},
		}
	}
}
