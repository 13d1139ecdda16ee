package main

import (
	"github.com/akramparvez/bureaucrat/internal/cli"
	"github.com/akramparvez/bureaucrat/internal/metrics"
)

func main() {
	metrics.EmitBuildInfo()
	cli.Execute()
}
