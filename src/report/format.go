package report

import "fmt"

const NotAvailable = "N/A"

// Human readable size. 1 MB is 1024000 bytes.
func FormatSize(bytes float64) string {
	switch {
	case bytes >= 1024000:
		return fmt.Sprintf("%.2f MB", bytes/1024000)
	case bytes >= 1024:
		return fmt.Sprintf("%.2f kB", bytes/1024)
	default:
		return fmt.Sprintf("%.0f bytes", bytes)
	}
}

// Milliseconds below one second, seconds otherwise
func FormatTime(seconds float64) string {
	if seconds < 1 {
		return fmt.Sprintf("%.0fms", seconds*1000)
	}
	return fmt.Sprintf("%.3fs", seconds)
}

func PrettyElapsed(seconds int) string {
	if seconds < 3600 {
		return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
	}
	return fmt.Sprintf("%02dh %02dm %02ds", seconds/3600, seconds%3600/60, seconds%60)
}
