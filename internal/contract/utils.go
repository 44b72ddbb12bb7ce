package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/locusproject/locus/schema"
)

// Color variables for console output.
var (
	LeaderColor   = color.New(color.FgGreen, color.Bold) // leaderColor marks the top score tier.
	StrongColor   = color.New(color.FgCyan, color.Bold)  // strongColor marks close contenders.
	ModerateColor = color.New(color.FgYellow)            // moderateColor represents the mid field, not bold.
	LowColor      = color.New(color.FgRed)               // lowColor marks the trailing tier.
)

// GetColorLabel returns a colored text label for console output (table).
// It uses schema.RelativeLabel to determine the string, and then applies
// the appropriate color.
func GetColorLabel(score, best float64) string {
	text := schema.RelativeLabel(score, best)

	switch text {
	case schema.LeaderLabel:
		return LeaderColor.Sprint(text)
	case schema.StrongLabel:
		return StrongColor.Sprint(text)
	case schema.ModerateLabel:
		return ModerateColor.Sprint(text)
	default: // "Low"
		return LowColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// LogEvents logs recomputation events as warnings so machine-readable
// stdout output stays clean.
func LogEvents(events []schema.Event) {
	for _, e := range events {
		_, _ = fmt.Fprintf(os.Stderr, "Warn %s\n", e.String())
	}
}

// GetStoreDBFilePath returns the path to the SQLite DB file for session storage.
func GetStoreDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".locus_sessions.db"
	}
	return filepath.Join(homeDir, ".locus_sessions.db")
}

// TruncateLabel truncates a display label to a maximum width with an
// ellipsis suffix. Requires maxWidth > 3 so there is space for both the
// ellipsis and at least one character of content.
func TruncateLabel(label string, maxWidth int) string {
	runes := []rune(label)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return label
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// SplitList splits a comma-separated flag value into trimmed, non-empty
// entries. An empty input yields nil.
func SplitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
