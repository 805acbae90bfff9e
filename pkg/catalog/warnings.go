package catalog

import (
	"fmt"
	"sync"

	"github.com/brandkit/brandkit/pkg/logger"
)

// WarningKind classifies non-fatal problems encountered during a run.
type WarningKind string

const (
	WarnConfig     WarningKind = "config"
	WarnSource     WarningKind = "source"
	WarnConversion WarningKind = "conversion"
	WarnIntegrity  WarningKind = "integrity"
)

// Warning is one accumulated non-fatal problem.
type Warning struct {
	Kind   WarningKind `json:"kind"`
	Detail string      `json:"detail"`
}

func (w Warning) String() string {
	return fmt.Sprintf("[%s] %s", w.Kind, w.Detail)
}

// Warnings accumulates non-fatal problems across a run. Conversion work runs
// in parallel, so adds are mutex-guarded. A run that only produced warnings
// still exits successfully; the full list is reported at the end.
type Warnings struct {
	mu   sync.Mutex
	list []Warning
}

// Addf records a warning and logs it immediately at warn level.
func (w *Warnings) Addf(kind WarningKind, format string, args ...interface{}) {
	detail := fmt.Sprintf(format, args...)
	w.mu.Lock()
	w.list = append(w.list, Warning{Kind: kind, Detail: detail})
	w.mu.Unlock()
	logger.Warn(detail, logger.String("kind", string(kind)))
}

// All returns a copy of the accumulated warnings in the order recorded.
func (w *Warnings) All() []Warning {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Warning, len(w.list))
	copy(out, w.list)
	return out
}

// Len returns the number of accumulated warnings.
func (w *Warnings) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.list)
}

// Report logs a summary of all accumulated warnings.
func (w *Warnings) Report() {
	all := w.All()
	if len(all) == 0 {
		return
	}
	logger.Warn(fmt.Sprintf("Run completed with %d warning(s)", len(all)))
	for _, warning := range all {
		logger.Warn(warning.String())
	}
}
