package cli

import (
	stdcontext "context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/akramparvez/bureaucrat/internal/config"
	"github.com/akramparvez/bureaucrat/internal/engine"
	"github.com/akramparvez/bureaucrat/internal/envfile"
	"github.com/akramparvez/bureaucrat/internal/logmux"
	"github.com/akramparvez/bureaucrat/internal/pidfile"
	"github.com/akramparvez/bureaucrat/internal/procfile"
)

type options struct {
	procfile    string
	envFile     string
	venv        string
	appRoot     string
	logDir      string
	pidDir      string
	only        []string
	concurrency []string
	grace       time.Duration
	jsonLog     bool
	verbose     bool
}

func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "bureaucrat",
		Short: "Procfile-driven process supervisor",
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.procfile, "procfile", "f", "Procfile", "Path to the Procfile")
	pf.StringVarP(&opts.envFile, "env-file", "e", "", "Environment file applied to every spawned process")
	pf.StringVar(&opts.venv, "venv", "", "Virtual environment root activated for spawned processes")
	pf.StringVar(&opts.appRoot, "app-root", "", "Working directory for spawned processes")
	pf.StringVar(&opts.logDir, "log-dir", "", "Directory to persist per-process logs")
	pf.StringVar(&opts.pidDir, "pid-dir", "", "Directory to persist per-process pid files")
	pf.StringSliceVar(&opts.only, "only", nil, "Restrict launching to the named processes")
	pf.StringSliceVarP(&opts.concurrency, "concurrency", "c", nil, "Replica overrides as name=count pairs")
	pf.DurationVar(&opts.grace, "grace", 2*time.Second, "Grace period before a termination request escalates to a kill")
	pf.BoolVar(&opts.jsonLog, "json", false, "Emit observations as JSON records")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "Emit lifecycle observations")

	root.AddCommand(newStartCmd(opts))
	root.AddCommand(newCheckCmd(opts))
	root.AddCommand(newRunCmd(opts))
	root.AddCommand(newVersionCmd())

	root.SilenceUsage = true
	root.SilenceErrors = true

	return root
}

// Execute runs the CLI entrypoint.
func Execute() {
	ctx, stop := signal.NotifyContext(stdcontext.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCmd()
	root.SetContext(ctx)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadSpecs(opts *options) ([]engine.ProcessSpec, error) {
	specs, err := procfile.Load(opts.procfile)
	if err != nil {
		return nil, err
	}
	if err := applyConcurrency(specs, opts.concurrency); err != nil {
		return nil, err
	}
	return specs, nil
}

// applyConcurrency overrides declared replica counts from name=count pairs.
func applyConcurrency(specs []engine.ProcessSpec, overrides []string) error {
	for _, override := range overrides {
		name, count, ok := strings.Cut(override, "=")
		if !ok {
			return fmt.Errorf("invalid concurrency override %q: expected name=count", override)
		}
		n, err := strconv.Atoi(count)
		if err != nil || n < 1 {
			return fmt.Errorf("invalid concurrency override %q: count must be a positive integer", override)
		}
		found := false
		for i := range specs {
			if specs[i].Name == name {
				specs[i].Replicas = n
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("concurrency override %q: process is not declared", override)
		}
	}
	return nil
}

func buildSettings(opts *options) (config.Settings, error) {
	settings := config.Settings{
		VirtualEnv: opts.venv,
		AppRoot:    opts.appRoot,
		LogDir:     opts.logDir,
		PIDDir:     opts.pidDir,
	}
	if opts.envFile != "" {
		env, err := envfile.Load(opts.envFile)
		if err != nil {
			return settings, err
		}
		settings.Env = env
	}
	if err := settings.Resolve(); err != nil {
		return settings, err
	}
	return settings, nil
}

func newBureaucrat(cmd *cobra.Command, opts *options, filter engine.Filter, settings config.Settings) *engine.Bureaucrat {
	var sink engine.Sink
	if opts.jsonLog {
		sink = engine.NewJSONSink(cmd.OutOrStdout(), cmd.ErrOrStderr())
	} else {
		sink = engine.NewWriterSink(cmd.OutOrStdout())
	}

	var logs engine.LogOpener
	if settings.LogDir != "" {
		logs = logmux.NewDir(settings.LogDir)
	}
	var pids engine.PIDRecorder
	if settings.PIDDir != "" {
		pids = pidfile.NewStore(settings.PIDDir)
	}

	return engine.New(engine.Config{
		Workdir: settings.AppRoot,
		Env:     settings.Environ(),
		Filter:  filter,
		Grace:   opts.grace,
		Verbose: opts.verbose,
		Sink:    sink,
		ErrOut:  cmd.ErrOrStderr(),
		Logs:    logs,
		Stdout:  cmd.OutOrStdout(),
		Stderr:  cmd.ErrOrStderr(),
		PIDs:    pids,
	})
}
