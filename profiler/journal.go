package profiler

import (
	"errors"
	"fmt"
	"os"
)

// ErrJournal indicates the journal file could not be opened, written, or
// closed.
var ErrJournal = errors.New("journal")

// Journal is an append-only record of attempted runs and the raw counter
// lines they produced.
//
// Create instances with [OpenJournal].
type Journal struct {
	f    *os.File
	path string
}

// OpenJournal opens path for appending, creating it if it does not exist.
func OpenJournal(path string) (*Journal, error) {
	//nolint:gosec // Journal path from CLI flag is expected.
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: open: %w", ErrJournal, err)
	}

	return &Journal{f: f, path: path}, nil
}

// Attempt records that profiler is about to run against module.
func (j *Journal) Attempt(profiler, module string) error {
	return j.writeLine(profiler + " " + module)
}

// Line records one raw line of counter output.
func (j *Journal) Line(line string) error {
	return j.writeLine(line)
}

func (j *Journal) writeLine(s string) error {
	_, err := fmt.Fprintln(j.f, s)
	if err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrJournal, j.path, err)
	}

	return nil
}

// Close closes the underlying file.
func (j *Journal) Close() error {
	err := j.f.Close()
	if err != nil {
		return fmt.Errorf("%w: close %s: %w", ErrJournal, j.path, err)
	}

	return nil
}
