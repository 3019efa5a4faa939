package model

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Program is an external program run against a sample. Runs are keyed by
// stringified 1-based indices in execution order; the run keyed by the run
// count is the program's last run.
type Program struct {
	// Name is the program identifier, unique within its sample.
	Name string

	// Runs maps "1", "2", ... to run records.
	Runs map[string]*Run
}

// NewProgram creates a program with an empty run history.
func NewProgram(name string) *Program {
	return &Program{
		Name: name,
		Runs: make(map[string]*Run),
	}
}

// AddRun appends a run at the next 1-based index and returns the program
// for chaining.
func (p *Program) AddRun(r *Run) *Program {
	if p.Runs == nil {
		p.Runs = make(map[string]*Run)
	}
	p.Runs[strconv.Itoa(len(p.Runs)+1)] = r
	return p
}

// LastRun selects the run keyed by the run count. It requires the run map
// to be indexed contiguously from 1: with zero runs it fails with
// ErrEmptyRunHistory, and with a gap at the last index it fails with
// ErrSparseRunHistory rather than guessing a repair.
func (p *Program) LastRun() (*Run, error) {
	if len(p.Runs) == 0 {
		return nil, fmt.Errorf("model: program %q: %w", p.Name, ErrEmptyRunHistory)
	}
	key := strconv.Itoa(len(p.Runs))
	run, ok := p.Runs[key]
	if !ok || run == nil {
		return nil, fmt.Errorf("model: program %q has %d runs but no run %q: %w",
			p.Name, len(p.Runs), key, ErrSparseRunHistory)
	}
	return run, nil
}

// Run is one execution of a program: its time window, exit status, and the
// user it ran as.
type Run struct {
	// ID is a unique identifier for the run record.
	ID string

	// StartTime and EndTime bound the execution.
	StartTime time.Time
	EndTime   time.Time

	// ExitStatus is the program's exit code.
	ExitStatus int

	// User is the identifier of the user the run executed as.
	User string
}

// NewRun creates a run record with an auto-generated ID.
func NewRun(user string, start, end time.Time, exitStatus int) *Run {
	return &Run{
		ID:         uuid.New().String(),
		StartTime:  start,
		EndTime:    end,
		ExitStatus: exitStatus,
		User:       user,
	}
}
