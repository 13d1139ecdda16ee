package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeProcfile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Procfile")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write procfile: %v", err)
	}
	return path
}

func TestCheckListsDeclaredProcesses(t *testing.T) {
	path := writeProcfile(t, "web: bin/server\nworker:\n    command: bin/worker\n    replicas: 2\n")

	out, _, err := executeCommand(t, "-f", path, "check")
	if err != nil {
		t.Fatalf("check: %v", err)
	}

	if !strings.Contains(out, "is valid: 2 processes") {
		t.Fatalf("expected validity summary in output:\n%s", out)
	}
	if !strings.Contains(out, "  web: bin/server\n") {
		t.Fatalf("expected web line in output:\n%s", out)
	}
	if !strings.Contains(out, "  worker (x2): bin/worker\n") {
		t.Fatalf("expected worker replica line in output:\n%s", out)
	}
}

func TestCheckFailsOnInvalidProcfile(t *testing.T) {
	path := writeProcfile(t, "web: bin/server\nweb: duplicate\n")

	_, _, err := executeCommand(t, "-f", path, "check")
	if err == nil {
		t.Fatal("expected error for duplicate process names")
	}
}
