package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"
)

// EventType captures the lifecycle observations emitted by the engine.
type EventType string

const (
	// EventTypeLaunch is emitted once per process, immediately before the
	// underlying OS process is started.
	EventTypeLaunch EventType = "launch"
	// EventTypeExit is emitted once per process as it is reaped.
	EventTypeExit EventType = "exit"
	// EventTypeDrained is emitted once per Stop call, after termination of
	// any remaining processes.
	EventTypeDrained EventType = "drained"
)

// Event is a single lifecycle observation.
type Event struct {
	Timestamp time.Time
	Type      EventType
	Process   string
	Command   string
	PID       int
	ExitCode  int
}

// Message renders the canonical line-oriented form of the observation.
func (e Event) Message() string {
	switch e.Type {
	case EventTypeLaunch:
		return fmt.Sprintf("Launching %s: %s", e.Process, e.Command)
	case EventTypeExit:
		return fmt.Sprintf("Spawned process ended: %s (pid: %d exit: %d)", e.Process, e.PID, e.ExitCode)
	case EventTypeDrained:
		return "All spawned processes have ended."
	}
	return ""
}

// Sink receives lifecycle observations synchronously, in the order the
// engine produces them.
type Sink interface {
	Emit(Event)
}

// NopSink discards every observation. Used when verbosity is disabled.
type NopSink struct{}

func (NopSink) Emit(Event) {}

// WriterSink renders observations as canonical text lines.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink constructs a sink writing canonical lines to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Emit(evt Event) {
	msg := evt.Message()
	if msg == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.w, msg)
}

type eventRecord struct {
	Timestamp time.Time `json:"ts"`
	Type      EventType `json:"type"`
	Process   string    `json:"process,omitempty"`
	PID       int       `json:"pid,omitempty"`
	ExitCode  int       `json:"exit,omitempty"`
	Message   string    `json:"msg"`
}

// JSONSink renders observations as one JSON record per line.
type JSONSink struct {
	mu     sync.Mutex
	enc    *json.Encoder
	stderr io.Writer
}

// NewJSONSink constructs a sink encoding observations to w, reporting encode
// failures to stderr.
func NewJSONSink(w, stderr io.Writer) *JSONSink {
	return &JSONSink{enc: json.NewEncoder(w), stderr: stderr}
}

func (s *JSONSink) Emit(evt Event) {
	record := eventRecord{
		Timestamp: evt.Timestamp,
		Type:      evt.Type,
		Process:   evt.Process,
		PID:       evt.PID,
		ExitCode:  evt.ExitCode,
		Message:   evt.Message(),
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.enc.Encode(&record); err != nil && s.stderr != nil {
		fmt.Fprintf(s.stderr, "error: encode event: %v\n", err)
	}
}
