package cli

import (
	"sync"

	"github.com/spf13/cobra"

	"github.com/akramparvez/bureaucrat/internal/engine"
)

func newStartCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Launch the declared processes and supervise them to completion",
		RunE: func(cmd *cobra.Command, args []string) error {
			specs, err := loadSpecs(opts)
			if err != nil {
				return err
			}
			return supervise(cmd, opts, specs, engine.NewFilter(opts.only...))
		},
	}
	return cmd
}

// supervise drives one full invocation: start, monitor until every process
// has exited, stop. A termination signal on the supervisor itself triggers
// stop concurrently; the final stop after monitor is suppressed in that
// case so the aggregate completion message appears exactly once.
func supervise(cmd *cobra.Command, opts *options, specs []engine.ProcessSpec, filter engine.Filter) error {
	settings, err := buildSettings(opts)
	if err != nil {
		return err
	}

	b := newBureaucrat(cmd, opts, filter, settings)

	var stopOnce sync.Once
	stop := func() { stopOnce.Do(b.Stop) }

	watchDone := make(chan struct{})
	defer close(watchDone)
	go func() {
		select {
		case <-cmd.Context().Done():
			stop()
		case <-watchDone:
		}
	}()

	if err := b.Start(specs); err != nil {
		stop()
		return err
	}
	b.Monitor()
	stop()
	return nil
}
