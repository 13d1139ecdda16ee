package engine

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestEventMessageRendering(t *testing.T) {
	cases := []struct {
		name string
		evt  Event
		want string
	}{
		{
			name: "launch",
			evt:  Event{Type: EventTypeLaunch, Process: "web", Command: "bin/server"},
			want: "Launching web: bin/server",
		},
		{
			name: "exit",
			evt:  Event{Type: EventTypeExit, Process: "web", PID: 1234, ExitCode: 0},
			want: "Spawned process ended: web (pid: 1234 exit: 0)",
		},
		{
			name: "nonzero exit",
			evt:  Event{Type: EventTypeExit, Process: "worker.1", PID: 99, ExitCode: 137},
			want: "Spawned process ended: worker.1 (pid: 99 exit: 137)",
		},
		{
			name: "drained",
			evt:  Event{Type: EventTypeDrained},
			want: "All spawned processes have ended.",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.evt.Message(); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestWriterSinkWritesCanonicalLines(t *testing.T) {
	var buf bytes.Buffer
	sink := NewWriterSink(&buf)

	sink.Emit(Event{Type: EventTypeLaunch, Process: "web", Command: "sleep 1"})
	sink.Emit(Event{Type: EventTypeDrained})

	want := "Launching web: sleep 1\nAll spawned processes have ended.\n"
	if got := buf.String(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestJSONSinkEncodesOneRecordPerEvent(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONSink(&buf, nil)

	sink.Emit(Event{Type: EventTypeExit, Process: "web", PID: 42, ExitCode: 1})

	var record struct {
		Type    string `json:"type"`
		Process string `json:"process"`
		PID     int    `json:"pid"`
		Exit    int    `json:"exit"`
		Message string `json:"msg"`
	}
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if record.Type != "exit" || record.Process != "web" || record.PID != 42 || record.Exit != 1 {
		t.Fatalf("unexpected record: %+v", record)
	}
	if record.Message != "Spawned process ended: web (pid: 42 exit: 1)" {
		t.Fatalf("unexpected message: %q", record.Message)
	}
}
