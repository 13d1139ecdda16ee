package engine

import (
	"fmt"
	"io"
	"os"
	"time"
)

// PIDRecorder persists (name, pid) pairs for spawned processes. The engine
// supplies the pairs; it never reads or writes PID files itself.
type PIDRecorder interface {
	Record(name string, pid int) error
	Clear() error
}

// Config carries everything a Bureaucrat needs for one invocation. All
// paths and environment values are resolved by the caller and passed
// through to spawning unchanged.
type Config struct {
	// Workdir is the working directory for spawned processes.
	Workdir string
	// Env is the complete spawn environment. Nil inherits the
	// supervisor's environment.
	Env []string
	// Filter names the specs to launch. Nil or empty launches all.
	Filter Filter
	// Grace bounds the wait between graceful termination and forced kill.
	Grace time.Duration
	// Verbose enables observation output. When false the sink is
	// replaced with a silent one.
	Verbose bool
	// Sink receives observations. Defaults to canonical text on stdout.
	Sink Sink
	// ErrOut receives non-fatal diagnostics. Defaults to stderr.
	ErrOut io.Writer
	// Logs supplies per-process output writers. Nil inherits stdio.
	Logs LogOpener
	// Stdout and Stderr are the child streams used when Logs is nil.
	Stdout io.Writer
	Stderr io.Writer
	// PIDs persists spawned process PIDs. Nil disables persistence.
	PIDs PIDRecorder
}

// Bureaucrat is the top-level supervisor. It owns one Manager and exposes
// the invocation lifecycle: Start, Monitor, Stop, called in that order by
// the CLI. Stop is additionally safe to call at any time after Start and
// any number of times.
type Bureaucrat struct {
	manager *Manager
	filter  Filter
	sink    Sink
	errw    io.Writer
	pids    PIDRecorder
}

// New constructs a supervisor for a single invocation.
func New(cfg Config) *Bureaucrat {
	sink := cfg.Sink
	if sink == nil {
		sink = NewWriterSink(os.Stdout)
	}
	if !cfg.Verbose {
		sink = NopSink{}
	}
	errw := cfg.ErrOut
	if errw == nil {
		errw = os.Stderr
	}

	manager := NewManager(ManagerConfig{
		Workdir: cfg.Workdir,
		Env:     cfg.Env,
		Grace:   cfg.Grace,
		Sink:    sink,
		Logs:    cfg.Logs,
		Stdout:  cfg.Stdout,
		Stderr:  cfg.Stderr,
	})

	return &Bureaucrat{
		manager: manager,
		filter:  cfg.Filter,
		sink:    sink,
		errw:    errw,
		pids:    cfg.PIDs,
	}
}

// Manager exposes the owned process manager.
func (b *Bureaucrat) Manager() *Manager { return b.manager }

// Start expands each spec passing the filter into its replicas and spawns
// them in declared order, then records their PIDs. A spawn failure is
// returned as-is; processes launched before it keep running and remain
// reachable by Stop.
func (b *Bureaucrat) Start(specs []ProcessSpec) error {
	if err := b.manager.SpawnAll(specs, b.filter); err != nil {
		return err
	}
	if b.pids != nil {
		for _, p := range b.manager.Processes() {
			if err := b.pids.Record(p.Name, p.PID()); err != nil {
				fmt.Fprintf(b.errw, "record pid for %s: %v\n", p.Name, err)
			}
		}
	}
	return nil
}

// Monitor blocks until every spawned process has exited, surfacing each
// exit observation as it is reaped. It is purely observational and returns
// immediately when nothing is running.
func (b *Bureaucrat) Monitor() {
	b.manager.WaitAll()
}

// Stop terminates any still-running processes and emits exactly one
// aggregate completion observation. Termination failures are logged, never
// fatal. Repeated calls perform no per-process work but still emit the
// aggregate observation.
func (b *Bureaucrat) Stop() {
	if err := b.manager.TerminateAll(); err != nil {
		fmt.Fprintf(b.errw, "%v\n", err)
	}
	b.sink.Emit(Event{Timestamp: time.Now(), Type: EventTypeDrained})
	if b.pids != nil {
		if err := b.pids.Clear(); err != nil {
			fmt.Fprintf(b.errw, "clear pid files: %v\n", err)
		}
	}
}
