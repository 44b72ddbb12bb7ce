package outwriter

import (
	"fmt"
	"io"

	"github.com/locusproject/locus/internal/contract"
	"github.com/locusproject/locus/schema"
)

// WriteStoreStatus outputs session store status information.
func WriteStoreStatus(w io.Writer, status schema.SessionStoreStatus, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, status); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
		return nil
	case schema.CSVOut:
		return fmt.Errorf("csv output is not supported for store status")
	default:
		return writeStoreStatusText(w, status)
	}
}

// writeStoreStatusText writes the human-readable status summary.
func writeStoreStatusText(w io.Writer, status schema.SessionStoreStatus) error {
	if _, err := fmt.Fprintf(w, "Store Backend: %s\n", status.Backend); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Connected: %t\n", status.Connected); err != nil {
		return err
	}
	if !status.Connected {
		return nil
	}
	if _, err := fmt.Fprintf(w, "Total Sessions: %d\n", status.TotalSessions); err != nil {
		return err
	}
	if status.TotalSessions > 0 {
		if _, err := fmt.Fprintf(w, "Last Update: %s\n", status.LastUpdateTime.Format(sessionTimeFormat)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "Oldest Session: %s\n", status.OldestSessionTime.Format(sessionTimeFormat)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Table Size: %d bytes\n", status.TableSizeBytes)
	return err
}
