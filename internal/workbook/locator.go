package workbook

import (
	"os"
	"time"
)

// Locate resolves the active workbook path. An explicit override wins; the
// candidate list is tried in order otherwise. Absence is a normal outcome
// consumed by the mappers and the sync orchestrator, never an error.
func Locate(override string, candidates []string) (string, bool) {
	if override != "" {
		if fileExists(override) {
			return override, true
		}
		return "", false
	}
	for _, path := range candidates {
		if fileExists(path) {
			return path, true
		}
	}
	return "", false
}

// ModTime returns the workbook's last modification time, nil when stat fails.
func ModTime(path string) *time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return nil
	}
	t := info.ModTime()
	return &t
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
