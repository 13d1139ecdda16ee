package engine

import (
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/akramparvez/bureaucrat/internal/metrics"
)

const defaultGracePeriod = 2 * time.Second

// LogOpener supplies per-process writers for child stdout/stderr. A nil
// opener leaves children attached to the supervisor's own streams.
type LogOpener interface {
	Open(name string) (io.WriteCloser, error)
}

// ManagerConfig carries the spawn parameters shared by every process in the
// managed set.
type ManagerConfig struct {
	// Workdir is the working directory for every child. Empty means the
	// supervisor's own working directory.
	Workdir string
	// Env is the complete spawn environment. Nil inherits the supervisor's
	// environment.
	Env []string
	// Grace bounds the wait after a graceful termination request before
	// escalating to an unconditional kill.
	Grace time.Duration
	// Sink receives lifecycle observations. Nil discards them.
	Sink Sink
	// Logs supplies per-process output writers. Nil inherits stdio.
	Logs LogOpener
	// Stdout and Stderr are the child streams used when Logs is nil. They
	// default to the supervisor's own streams.
	Stdout io.Writer
	Stderr io.Writer
}

type exitResult struct {
	proc *Process
	code int
}

// Manager owns the ordered set of spawned processes. The sequence is
// append-only during SpawnAll and is never reordered; only the Manager
// mutates process state, and every exit path reaps.
type Manager struct {
	workdir string
	env     []string
	grace   time.Duration
	sink    Sink
	logs    LogOpener
	stdout  io.Writer
	stderr  io.Writer

	// exits is the wait-for-any-child primitive: every spawned process has
	// one wait goroutine that delivers its completion here, and the reap
	// paths below dispatch each completion to its owning Process.
	exits chan exitResult
	// drained is closed once every spawned process has been reaped. It
	// wakes a reap loop whose final completion was consumed by the other
	// one when WaitAll and TerminateAll overlap.
	drained chan struct{}

	mu        sync.Mutex
	processes []*Process
	running   int
	spawned   bool
	spawnDone bool
}

// NewManager constructs a manager with no processes.
func NewManager(cfg ManagerConfig) *Manager {
	grace := cfg.Grace
	if grace <= 0 {
		grace = defaultGracePeriod
	}
	sink := cfg.Sink
	if sink == nil {
		sink = NopSink{}
	}
	stdout := cfg.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := cfg.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	return &Manager{
		workdir: cfg.Workdir,
		env:     cfg.Env,
		grace:   grace,
		sink:    sink,
		logs:    cfg.Logs,
		stdout:  stdout,
		stderr:  stderr,
		drained: make(chan struct{}),
	}
}

// Processes returns a snapshot of the managed sequence in spawn order.
func (m *Manager) Processes() []*Process {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*Process(nil), m.processes...)
}

// RunningCount returns the number of processes still in StateRunning.
func (m *Manager) RunningCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// SpawnAll launches every replica of every spec passing the filter, in
// declared order. The launch observation for each process is emitted before
// its OS process starts. A spawn failure aborts the batch with a *SpawnError
// naming the offending process; processes launched before the failure keep
// running and remain reachable by TerminateAll.
func (m *Manager) SpawnAll(specs []ProcessSpec, filter Filter) error {
	m.mu.Lock()
	if m.spawned {
		m.mu.Unlock()
		return errors.New("process set already spawned")
	}
	m.spawned = true
	m.mu.Unlock()

	total := 0
	for _, spec := range specs {
		if filter.Allows(spec.Name) {
			total += spec.replicaCount()
		}
	}
	m.exits = make(chan exitResult, total)
	defer func() {
		m.mu.Lock()
		m.spawnDone = true
		m.mu.Unlock()
	}()

	for _, spec := range specs {
		if !filter.Allows(spec.Name) {
			continue
		}
		for i := 0; i < spec.replicaCount(); i++ {
			if err := m.spawn(spec.replicaName(i), spec.Command); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *Manager) spawn(name, command string) error {
	p := &Process{Name: name, Command: command, state: StatePending}

	m.sink.Emit(Event{
		Timestamp: time.Now(),
		Type:      EventTypeLaunch,
		Process:   name,
		Command:   command,
	})

	cmd := shellCommand(command)
	cmd.Dir = m.workdir
	cmd.Env = m.env
	configureSysProcAttr(cmd)

	if m.logs != nil {
		w, err := m.logs.Open(name)
		if err != nil {
			return &SpawnError{Process: name, Err: err}
		}
		cmd.Stdout = w
		cmd.Stderr = w
		p.logCloser = w
	} else {
		cmd.Stdout = m.stdout
		cmd.Stderr = m.stderr
	}

	if err := cmd.Start(); err != nil {
		if p.logCloser != nil {
			p.logCloser.Close()
		}
		return &SpawnError{Process: name, Err: err}
	}

	p.cmd = cmd
	p.state = StateRunning

	m.mu.Lock()
	m.processes = append(m.processes, p)
	m.running++
	m.mu.Unlock()

	metrics.IncProcessSpawned(name)
	metrics.AddRunning(1)

	go func() {
		err := cmd.Wait()
		m.exits <- exitResult{proc: p, code: exitCodeFromWait(cmd, err)}
	}()

	return nil
}

// WaitAll blocks until every managed process has reached a terminal state,
// emitting each exit observation as it is reaped, in actual exit order. It
// never returns partial results and never fails on a nonzero exit code.
func (m *Manager) WaitAll() {
	for m.RunningCount() > 0 {
		select {
		case res := <-m.exits:
			m.reap(res)
		case <-m.drained:
			return
		}
	}
}

// reap records the terminal state for a completed process, releases its log
// writer and emits the exit observation. Each process is reaped exactly once
// because its wait goroutine delivers exactly one completion.
func (m *Manager) reap(res exitResult) {
	p := res.proc

	m.mu.Lock()
	if !p.state.Terminal() {
		if p.killReq {
			p.state = StateKilled
		} else {
			p.state = StateExited
		}
		p.exitCode = res.code
		m.running--
	}
	if m.running == 0 && m.spawnDone {
		select {
		case <-m.drained:
		default:
			close(m.drained)
		}
	}
	state := p.state
	closer := p.logCloser
	p.logCloser = nil
	m.mu.Unlock()

	if closer != nil {
		closer.Close()
	}

	metrics.ObserveProcessExit(p.Name, state.String())
	metrics.AddRunning(-1)

	m.sink.Emit(Event{
		Timestamp: time.Now(),
		Type:      EventTypeExit,
		Process:   p.Name,
		Command:   p.Command,
		PID:       p.PID(),
		ExitCode:  res.code,
	})
}

// TerminateAll requests graceful termination of every still-running process
// in declared order, reaps completions for up to the grace period, then
// unconditionally kills and reaps whatever remains. Already-terminal
// processes are skipped without observations; calling with nothing running
// is a no-op. Signal-delivery failures are collected as *TerminationError
// values and returned joined; they never prevent reaping.
func (m *Manager) TerminateAll() error {
	m.mu.Lock()
	var pending []*Process
	for _, p := range m.processes {
		if p.state == StateRunning {
			p.killReq = true
			pending = append(pending, p)
		}
	}
	m.mu.Unlock()

	if len(pending) == 0 {
		return nil
	}

	var errs []error
	for _, p := range pending {
		if err := p.signalStop(); err != nil {
			errs = append(errs, &TerminationError{Process: p.Name, Err: err})
		}
	}

	deadline := time.Now().Add(m.grace)
	for m.RunningCount() > 0 {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			break
		}
		timer := time.NewTimer(remaining)
		select {
		case res := <-m.exits:
			timer.Stop()
			m.reap(res)
		case <-m.drained:
			timer.Stop()
		case <-timer.C:
		}
	}

	m.mu.Lock()
	var stubborn []*Process
	for _, p := range pending {
		if p.state == StateRunning {
			stubborn = append(stubborn, p)
		}
	}
	m.mu.Unlock()

	for _, p := range stubborn {
		if err := p.signalKill(); err != nil {
			errs = append(errs, &TerminationError{Process: p.Name, Err: err})
		}
	}
	for m.RunningCount() > 0 {
		select {
		case res := <-m.exits:
			m.reap(res)
		case <-m.drained:
			return errors.Join(errs...)
		}
	}

	return errors.Join(errs...)
}
