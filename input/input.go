package input

import (
	"errors"
	"fmt"
	"io"
	"log"

	impl "github.com/SchnorcherSepp/fileinput/defaultimpl"
	interf "github.com/SchnorcherSepp/fileinput/interfaces"
)

// packageName is the prefix for log messages
const packageName = "input"

// Input is the front-end of one transaction: it lists and splits the target files
// and opens the partial files for the workers.
type Input struct {
	fs  interf.FileSystem
	cfg Config
}

// Plan is the ordered list of partial files of a transaction.
// Every partial file is one task.
type Plan struct {
	Partials []interf.Partial
}

// New returns the front-end for the file system fs.
func New(fs interf.FileSystem, cfg Config) *Input {
	return &Input{
		fs:  fs,
		cfg: cfg,
	}
}

// Config returns the configuration of the transaction.
func (in *Input) Config() Config {
	return in.cfg
}

// Transaction lists the target files and splits them into partial files.
// If nothing (or only empty files) is found, a *interf.NotFoundError is returned
// and no task must be started.
func (in *Input) Transaction() (*Plan, error) {
	if in.fs == nil {
		return nil, errors.New("input/Transaction: file system is nil")
	}

	log.Printf("INFO: %s/Transaction: loading target files: %s", packageName, in.cfg.Path)
	files, err := impl.ListFiles(in.fs, in.cfg.Path, in.cfg.DebugLvl)
	if err != nil {
		log.Printf("ERROR: %s/Transaction: %v", packageName, err)
		return nil, err
	}
	log.Printf("INFO: %s/Transaction: %d files found (%d bytes)", packageName, files.Len(), files.TotalSize())

	partials := impl.Plan(files, in.cfg.planOptions())
	if len(partials) == 0 {
		err := &interf.NotFoundError{Path: in.cfg.Path}
		log.Printf("ERROR: %s/Transaction: only empty files: %v", packageName, err)
		return nil, err
	}

	log.Printf("INFO: %s/Transaction: task count: %d", packageName, len(partials))
	return &Plan{Partials: partials}, nil
}

// Resume runs the control function of the orchestrator with the plan.
// The error of control is returned unchanged.
func (in *Input) Resume(plan *Plan, control func(*Plan) error) error {
	if plan == nil || control == nil {
		return errors.New("input/Resume: plan or control is nil")
	}
	return control(plan)
}

// Open opens the file of the partial file p and returns a stream of the bytes [start, end).
// Errors of the file system are returned as *interf.RemoteError.
func (in *Input) Open(p interf.Partial) (io.ReadCloser, error) {
	if p == nil {
		return nil, errors.New("input/Open: partial file is nil")
	}
	if in.cfg.DebugLvl >= impl.DebugLow {
		log.Printf("DEBUG: %s/Open: %s", packageName, p)
	}

	rc, err := in.fs.Open(p.Path())
	if err != nil {
		return nil, &interf.RemoteError{Op: "open", Path: p.Path(), Err: err}
	}
	return impl.NewPartialReader(rc, p.Start(), p.End())
}

// OpenTask opens the partial file of the task taskIndex.
func (in *Input) OpenTask(plan *Plan, taskIndex int) (io.ReadCloser, error) {
	p, err := plan.Task(taskIndex)
	if err != nil {
		return nil, err
	}
	return in.Open(p)
}

// OpenAt returns random read access to the partial file p. Offset 0 is p.Start().
// cache can be nil (see impl.NewCache).
func (in *Input) OpenAt(p interf.Partial, cache interf.Cache) (interf.ReaderAt, error) {
	return impl.NewPartialReaderAt(in.fs, p, cache, in.cfg.DebugLvl)
}

//--------------------------------------------------------------------------------------------------------------------//

// TaskCount is the number of tasks (= partial files).
func (p *Plan) TaskCount() int {
	if p == nil {
		return 0
	}
	return len(p.Partials)
}

// Task returns the partial file of the task i.
func (p *Plan) Task(i int) (interf.Partial, error) {
	if i < 0 || i >= p.TaskCount() {
		return nil, fmt.Errorf("input: task %d out of range [0, %d)", i, p.TaskCount())
	}
	return p.Partials[i], nil
}
