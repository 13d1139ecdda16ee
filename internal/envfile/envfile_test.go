package envfile_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akramparvez/bureaucrat/internal/envfile"
)

func TestParseDialect(t *testing.T) {
	t.Setenv("ENVFILE_TEST_HOME", "/srv/app")

	input := `
# deployment settings
PORT=8080
export SECRET="s3cr3t value"
NAME='literal $PORT'
WORKERS=4 # inline comment
ROOT=$ENVFILE_TEST_HOME/current
`
	values, err := envfile.Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"PORT":    "8080",
		"SECRET":  "s3cr3t value",
		"NAME":    "literal ",
		"WORKERS": "4",
		"ROOT":    "/srv/app/current",
	}, values)
}

func TestParseRejectsMalformedLines(t *testing.T) {
	cases := []string{
		"not-an-assignment\n",
		"=value\n",
		"KEY=\"unterminated\n",
		"KEY='unterminated\n",
	}
	for _, input := range cases {
		_, err := envfile.Parse(strings.NewReader(input))
		require.Error(t, err, "input %q", input)
	}
}

func TestLoadReportsMissingFile(t *testing.T) {
	_, err := envfile.Load("testdata/does-not-exist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load env file")
}
