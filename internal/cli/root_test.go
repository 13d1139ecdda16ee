package cli

import (
	"bytes"
	stdcontext "context"
	"testing"

	"github.com/akramparvez/bureaucrat/internal/engine"
)

func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	root.SetContext(stdcontext.Background())
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestApplyConcurrencyOverridesReplicas(t *testing.T) {
	specs := []engine.ProcessSpec{
		{Name: "web", Command: "bin/server", Replicas: 1},
		{Name: "worker", Command: "bin/worker", Replicas: 1},
	}
	if err := applyConcurrency(specs, []string{"worker=3"}); err != nil {
		t.Fatalf("apply concurrency: %v", err)
	}
	if specs[0].Replicas != 1 || specs[1].Replicas != 3 {
		t.Fatalf("unexpected replicas: web=%d worker=%d", specs[0].Replicas, specs[1].Replicas)
	}
}

func TestApplyConcurrencyRejectsBadOverrides(t *testing.T) {
	specs := []engine.ProcessSpec{{Name: "web", Command: "bin/server", Replicas: 1}}

	cases := []string{"web", "web=zero", "web=0", "web=-1", "ghost=2"}
	for _, override := range cases {
		if err := applyConcurrency(specs, []string{override}); err == nil {
			t.Fatalf("expected error for override %q", override)
		}
	}
}

func TestStartFailsOnMissingProcfile(t *testing.T) {
	_, _, err := executeCommand(t, "-f", "testdata/does-not-exist", "start")
	if err == nil {
		t.Fatal("expected error for missing procfile")
	}
}

func TestRunRejectsUndeclaredProcess(t *testing.T) {
	procfilePath := writeProcfile(t, "web: sleep 0\n")
	_, _, err := executeCommand(t, "-f", procfilePath, "run", "ghost")
	if err == nil {
		t.Fatal("expected error for undeclared process")
	}
}
