// Command espresso-playground is an interactive playground for the Espresso
// language.
//
// Without flags it opens the terminal UI. With -mcp it serves the playground
// tools over MCP on stdin/stdout. With -run it executes one file and prints
// the output.
//
//	espresso-playground [-config file] [-catalog file] [-engine cmd] [-mcp] [-run file]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/TheTrio/EspressoPlayground/backend"
	"github.com/TheTrio/EspressoPlayground/backend/local"
	"github.com/TheTrio/EspressoPlayground/catalog"
	"github.com/TheTrio/EspressoPlayground/catalog/lessonindex"
	"github.com/TheTrio/EspressoPlayground/config"
	"github.com/TheTrio/EspressoPlayground/engine"
	"github.com/TheTrio/EspressoPlayground/engine/process"
	"github.com/TheTrio/EspressoPlayground/execution"
	"github.com/TheTrio/EspressoPlayground/logging"
	"github.com/TheTrio/EspressoPlayground/mcpserver"
	"github.com/TheTrio/EspressoPlayground/playground"
	"github.com/TheTrio/EspressoPlayground/session"
	"github.com/TheTrio/EspressoPlayground/tui"
)

var version = "dev"

// errRunFailed marks a -run whose program failed; the message is already on
// stdout.
var errRunFailed = errors.New("program failed")

type options struct {
	configPath  string
	catalogPath string
	engineCmd   string
	mcp         bool
	runFile     string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("espresso-playground", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&opts.catalogPath, "catalog", "", "lesson catalog (JSON or YAML); overrides the config file")
	fs.StringVar(&opts.engineCmd, "engine", "", "interpreter command; overrides the config file")
	fs.BoolVar(&opts.mcp, "mcp", false, "serve the playground tools over MCP on stdio")
	fs.StringVar(&opts.runFile, "run", "", "run a source file, print its output and exit")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if opts.mcp && opts.runFile != "" {
		return options{}, fmt.Errorf("-mcp and -run are mutually exclusive")
	}
	return opts, nil
}

// loadConfig reads the config file, if any, and applies flag overrides.
func loadConfig(opts options) (config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return config.Config{}, err
		}
	}
	if opts.catalogPath != "" {
		cfg.Catalog = opts.catalogPath
	}
	if opts.engineCmd != "" {
		cfg.Engine.Command = opts.engineCmd
		cfg.Engine.Args = nil
	}
	return cfg, cfg.Validate()
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	return catalog.LoadFile(path)
}

// openLog returns the log destination. The terminal UI owns the screen, so
// without a log file it discards logs; other modes fall back to stderr.
func openLog(cfg config.Config, opts options, stderr io.Writer) (io.Writer, func() error, error) {
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		return f, f.Close, nil
	}
	if !opts.mcp && opts.runFile == "" {
		return io.Discard, func() error { return nil }, nil
	}
	return stderr, func() error { return nil }, nil
}

func runFile(ctx context.Context, ctrl execution.Controller, path string, stdout io.Writer) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	p := playground.New(ctrl)
	res := p.LoadAndRun(ctx, string(src))
	if out := p.Output(); out != "" {
		fmt.Fprintln(stdout, out)
	}
	if !res.OK() {
		return errRunFailed
	}
	return nil
}

func serveMCP(ctx context.Context, c *catalog.Catalog, ctrl execution.Controller, log *logging.Logger) error {
	lessons, err := lessonindex.New(c)
	if err != nil {
		return err
	}
	store := session.NewStore(func() *playground.Playground {
		return playground.New(ctrl, playground.WithSource(playground.DefaultSource(c)))
	})
	tools, def, err := local.NewPlayground("playground", local.PlaygroundDeps{
		Sessions: store,
		Catalog:  c,
		Lessons:  lessons,
		Logger:   log,
	})
	if err != nil {
		return err
	}
	log.Info("default session created", "session", def)

	reg := backend.NewRegistry()
	if err := reg.Register(tools); err != nil {
		return err
	}
	if err := reg.StartAll(ctx); err != nil {
		return err
	}
	defer func() { _ = reg.StopAll() }()

	srv, err := mcpserver.New(ctx, mcpserver.Config{
		Version:    version,
		Aggregator: backend.NewAggregator(reg),
		Logger:     log,
	})
	if err != nil {
		return err
	}
	return srv.Serve(ctx)
}

func runTUI(ctx context.Context, c *catalog.Catalog, ctrl execution.Controller, log *logging.Logger) error {
	p := playground.New(ctrl, playground.WithSource(playground.DefaultSource(c)))
	m, err := tui.New(tui.Config{Playground: p, Catalog: c, Context: ctx, Logger: log})
	if err != nil {
		return err
	}
	return tui.Run(ctx, m)
}

func newEngine(cfg config.Config) (engine.Engine, error) {
	return process.New(process.Config{Command: cfg.Engine.Command, Args: cfg.Engine.Args})
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logOut, closeLog, err := openLog(cfg, opts, stderr)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()
	lc := cfg.Logging(logOut)
	lc.Component = "espresso-playground"
	log := logging.New(lc)

	c, err := loadCatalog(cfg.Catalog)
	if err != nil {
		return err
	}
	eng, err := newEngine(cfg)
	if err != nil {
		return err
	}
	ctrl, err := execution.NewDefaultController(execution.Config{Engine: eng, Logger: log})
	if err != nil {
		return err
	}
	log.Debug("starting", "sections", c.Len(), "engine", cfg.Engine.Command)

	switch {
	case opts.runFile != "":
		return runFile(ctx, ctrl, opts.runFile, stdout)
	case opts.mcp:
		return serveMCP(ctx, c, ctrl, log)
	default:
		return runTUI(ctx, c, ctrl, log)
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
	case errors.Is(err, errRunFailed):
		os.Exit(1)
	default:
		fmt.Fprintf(os.Stderr, "espresso-playground: %v\n", err)
		os.Exit(1)
	}
}
