package cli

import (
	"fmt"
	"io"
	"log"

	"github.com/fatih/color"

	"github.com/tatianab/rover-rescue/internal/config"
	"github.com/tatianab/rover-rescue/internal/history"
)

// openHistory opens the configured run history. A backend that cannot be
// opened or read is logged and reported on errOut, and play continues with
// what could be loaded. The returned close function is never nil.
func openHistory(cfg *config.Config, errOut io.Writer) (*history.Store, func() error) {
	medium, closeFn, err := cfg.OpenMedium()
	if err != nil {
		log.Printf("history: open %s backend: %v", cfg.HistoryBackend, err)
		warn(errOut, "⚠️  Run history is unavailable (%v). Runs will be kept until you quit.", err)
		medium = history.NewMemoryMedium()
	}

	store, err := history.Open(medium)
	if err != nil {
		log.Printf("history: %v", err)
		warn(errOut, "⚠️  Run history could not be loaded (%v). Starting with an empty history.", err)
	}
	return store, closeFn
}

func warn(w io.Writer, format string, args ...any) {
	color.New(color.FgYellow).Fprintln(w, fmt.Sprintf(format, args...))
}
