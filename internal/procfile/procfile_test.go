package procfile_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akramparvez/bureaucrat/internal/engine"
	"github.com/akramparvez/bureaucrat/internal/procfile"
)

func TestParsePreservesDeclarationOrder(t *testing.T) {
	input := `
# local stack
web: bin/server --port 8080
worker: bin/worker
scheduler: bin/scheduler
`
	specs, err := procfile.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, specs, 3)

	assert.Equal(t, []engine.ProcessSpec{
		{Name: "web", Command: "bin/server --port 8080", Replicas: 1},
		{Name: "worker", Command: "bin/worker", Replicas: 1},
		{Name: "scheduler", Command: "bin/scheduler", Replicas: 1},
	}, specs)
}

func TestParseMappingFormCarriesReplicas(t *testing.T) {
	input := `
web: bin/server
worker:
    command: bin/worker
    replicas: 3
`
	specs, err := procfile.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, specs, 2)
	assert.Equal(t, engine.ProcessSpec{Name: "worker", Command: "bin/worker", Replicas: 3}, specs[1])
}

func TestParseRejectsDuplicateNames(t *testing.T) {
	input := "web: bin/server\nweb: bin/other\n"
	_, err := procfile.Parse(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate process name")
}

func TestParseRejectsInvalidNames(t *testing.T) {
	_, err := procfile.Parse(strings.NewReader("bad name: sleep 1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid process name")
}

func TestParseRejectsEmptyCommand(t *testing.T) {
	_, err := procfile.Parse(strings.NewReader("web: \"\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no command")
}

func TestParseRejectsNonPositiveReplicas(t *testing.T) {
	input := "worker:\n    command: bin/worker\n    replicas: 0\n"
	_, err := procfile.Parse(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "replicas must be positive")
}

func TestParseRejectsEmptyProcfile(t *testing.T) {
	for _, input := range []string{"", "# nothing here\n"} {
		_, err := procfile.Parse(strings.NewReader(input))
		require.Error(t, err, "input %q", input)
	}
}

func TestParseRejectsNonMappingDocuments(t *testing.T) {
	_, err := procfile.Parse(strings.NewReader("- web\n- worker\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must map process names")
}

func TestLoadReportsMissingFile(t *testing.T) {
	_, err := procfile.Load("testdata/does-not-exist")
	require.Error(t, err)
}
