// Package ledger tracks resources acquired while binding one call so they
// can be released together if the binding fails.
package ledger

import (
	"fmt"
	"log/slog"
)

// ReleaseFunc returns a resource acquired during conversion. It must not fail.
type ReleaseFunc func(handle any)

// Entry pairs an acquired resource with its release function.
type Entry struct {
	Handle  any
	Release ReleaseFunc
}

// Ledger is an ordered list of acquired resources. It is owned by a single
// binding call and is not safe for concurrent use.
type Ledger struct {
	entries []Entry
	logger  *slog.Logger
}

// New creates an empty ledger with room for capacity entries.
func New(capacity int, logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Ledger{
		entries: make([]Entry, 0, capacity),
		logger:  logger,
	}
}

// Add records a resource. A nil release function is ignored.
func (l *Ledger) Add(handle any, release ReleaseFunc) {
	if release == nil {
		return
	}

	l.entries = append(l.entries, Entry{Handle: handle, Release: release})
}

// Len returns the number of outstanding entries.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Release releases every entry in the order it was added and empties the ledger.
func (l *Ledger) Release() {
	entries := l.entries
	l.entries = nil
	release(entries, l.logger)
}

// Transfer hands all entries to the caller without releasing them and
// empties the ledger.
func (l *Ledger) Transfer() []Entry {
	out := l.entries
	l.entries = nil

	return out
}

// ReleaseAll releases entries previously obtained from Transfer.
func ReleaseAll(entries []Entry) {
	release(entries, slog.New(slog.DiscardHandler))
}

func release(entries []Entry, logger *slog.Logger) {
	for _, e := range entries {
		releaseOne(e, logger)
	}

	if len(entries) > 0 {
		logger.Debug("released acquired resources", slog.Int("count", len(entries)))
	}
}

// releaseOne runs a single release; a panicking release is logged and does
// not stop the remaining releases.
func releaseOne(e Entry, logger *slog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("resource release panicked", slog.String("panic", fmt.Sprint(r)))
		}
	}()

	e.Release(e.Handle)
}
