package output

import (
	"os"
	"path/filepath"
)

// GetLogFilePath returns the path to the log file.
// If GITDESK_LOG_FILE is set, uses that path.
// Otherwise, uses ~/.gitdesk/logs/gitdesk.log
func GetLogFilePath() string {
	if customPath := os.Getenv("GITDESK_LOG_FILE"); customPath != "" {
		return customPath
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "gitdesk.log"
	}

	return filepath.Join(homeDir, ".gitdesk", "logs", "gitdesk.log")
}
