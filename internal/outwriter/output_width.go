package outwriter

import (
	"os"

	"github.com/locusproject/locus/internal/contract"
	"golang.org/x/term"
)

// GetMaxTableNameWidth calculates the maximum width for entity names in
// table output based on terminal width and table configuration.
func GetMaxTableNameWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for fixed columns with table formatting
	baseWidth := 30 // Rank + ID + Score + Label with borders/padding

	// Add region column with formatting
	if cfg.Detail {
		baseWidth += 15
	}

	// Add explain column with formatting
	if cfg.Explain {
		baseWidth += 30
	}

	// Reserve space for table borders, separators, and padding
	baseWidth += 15

	// Calculate available space for the name
	available := termWidth - baseWidth
	if available < 12 {
		// Minimum reasonable name width
		return 12
	}
	if available > 40 {
		// Maximum name width to prevent overly wide tables
		return 40
	}
	return available
}
