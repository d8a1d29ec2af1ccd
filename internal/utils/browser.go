package utils

import (
	"fmt"
	"strings"
)

// OpenBrowser opens url in the default browser without waiting for it
func OpenBrowser(url string) error {
	if !strings.HasPrefix(url, "https://") && !strings.HasPrefix(url, "http://") {
		return fmt.Errorf("refusing to open %q: not a web address", url)
	}
	cmd := browserCommand(url)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return cmd.Process.Release()
}
