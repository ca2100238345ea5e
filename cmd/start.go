package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"mcdevkit/internal/config"
	"mcdevkit/internal/download"
	"mcdevkit/internal/logger"
	"mcdevkit/internal/remote"
	"mcdevkit/internal/server"
	"mcdevkit/internal/software"
	"mcdevkit/internal/version"
	"mcdevkit/internal/workspace"
)

// startOptions holds the flags of the start command.
type startOptions struct {
	workDir    string
	args       []string
	mem        int
	gui        bool
	port       int
	configPath string
}

var startOpts startOptions

// startCmd downloads, prepares and runs one server.
var startCmd = &cobra.Command{
	Use:   "start <software> <version> [plugins...]",
	Short: "Download and start a Minecraft server with the given plugins",
	Example: `  mcdevkit start paper 1.20.1 ./build/libs/MyPlugin.jar
  mcdevkit start paper 1.20.4 WorldEdit.jar -w ./server -m 4096 -p 25566
  mcdevkit start -c dev.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 && startOpts.configPath == "" {
			return cmd.Help()
		}

		debugChanged := cmd.Flag("debug") != nil && cmd.Flag("debug").Changed
		cfg, err := startOpts.serverConfig(cmd.Flags().Changed, args, debug, debugChanged)
		if err != nil {
			return err
		}
		logger.Init(cfg.Debug)
		return runUntilInterrupt(cmd.Context(), cfg)
	},
}

func init() {
	f := startCmd.Flags()
	f.StringVarP(&startOpts.workDir, "working-directory", "w", "", "Server directory (default: a fresh folder under the temp directory)")
	f.StringArrayVarP(&startOpts.args, "args", "a", nil, "Extra argument passed to the server (repeatable)")
	f.IntVarP(&startOpts.mem, "mem", "m", config.DefaultMemoryMB, "Maximum heap size in megabytes")
	f.BoolVarP(&startOpts.gui, "gui", "g", false, "Show the server GUI")
	f.IntVarP(&startOpts.port, "port", "p", config.DefaultPort, "Server port")
	f.StringVarP(&startOpts.configPath, "config", "c", "", "YAML preset providing defaults for any argument or flag")
}

// serverConfig merges the positional arguments, the flags and the optional
// preset into a ServerConfig. changed reports whether a flag was set
// explicitly; explicit flags win over the preset.
func (o *startOptions) serverConfig(changed func(string) bool, args []string, debug, debugChanged bool) (*config.ServerConfig, error) {
	preset := &config.Preset{}
	if o.configPath != "" {
		p, err := config.LoadPreset(o.configPath)
		if err != nil {
			return nil, err
		}
		preset = p
	}

	name, ver, plugins := preset.Software, preset.Version, preset.Plugins
	if len(args) > 0 {
		name = args[0]
	}
	if len(args) > 1 {
		ver = args[1]
	}
	if len(args) > 2 {
		plugins = args[2:]
	}
	if name == "" || ver == "" {
		return nil, fmt.Errorf("both <software> and <version> are required")
	}

	sw, err := software.Parse(name)
	if err != nil {
		return nil, err
	}

	cfg := &config.ServerConfig{
		Software:  sw,
		Version:   ver,
		Plugins:   plugins,
		WorkDir:   config.Generate(),
		Args:      o.args,
		MemoryMB:  o.mem,
		GUI:       o.gui,
		Port:      o.port,
		Debug:     debug,
		Endpoints: preset.Endpoints,
	}

	if !changed("args") && len(preset.Args) > 0 {
		cfg.Args = preset.Args
	}
	if !changed("mem") && preset.Mem > 0 {
		cfg.MemoryMB = preset.Mem
	}
	if !changed("gui") && preset.GUI != nil {
		cfg.GUI = *preset.GUI
	}
	if !changed("port") && preset.Port > 0 {
		cfg.Port = preset.Port
	}
	if !debugChanged && preset.Debug != nil {
		cfg.Debug = *preset.Debug
	}

	wd := o.workDir
	if !changed("working-directory") && preset.WorkingDirectory != "" {
		wd = preset.WorkingDirectory
	}
	if wd != "" {
		cfg.WorkDir = config.Explicit(wd)
	}

	if cfg.MemoryMB <= 0 {
		return nil, fmt.Errorf("--mem must be a positive number of megabytes, got %d", cfg.MemoryMB)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("--port %d out of range", cfg.Port)
	}
	return cfg, nil
}

// runUntilInterrupt runs runStart with a context cancelled by SIGINT, so
// Ctrl-C aborts provisioning or kills the running server.
func runUntilInterrupt(ctx context.Context, cfg *config.ServerConfig) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	return runStart(ctx, cfg)
}

// runStart validates, provisions and runs the server described by cfg.
func runStart(ctx context.Context, cfg *config.ServerConfig) error {
	fetcher := remote.NewHTTPClient()

	validator := version.NewValidator(fetcher, cfg.Endpoints.Manifest)
	var valid bool
	withSpinner(cfg.Debug, " Checking version "+cfg.Version+"...", func() {
		valid = validator.IsValid(ctx, cfg.Version)
	})
	if !valid {
		return errReported
	}

	cfg.Args = server.ServerArgs(cfg.Args, cfg.GUI, cfg.Port)

	if cfg.WorkDir.IsExplicit() {
		if err := workspace.EnsureExplicit(cfg.WorkDir.Path()); err != nil {
			return err
		}
	}

	if cfg.Debug {
		dumpConfig(cfg)
	}

	resolver, err := software.For(cfg.Software, fetcher, software.Endpoints{Paper: cfg.Endpoints.Paper})
	if err != nil {
		return err
	}

	manager := &workspace.Manager{
		Resolver: &spinnerResolver{Resolver: resolver, quiet: cfg.Debug},
		Downloader: &download.Downloader{
			Fetcher:     fetcher,
			NewProgress: download.BarFactory(os.Stdout),
		},
	}
	ws, err := manager.Prepare(ctx, cfg)
	if err != nil {
		return err
	}

	supervisor := &server.Supervisor{Java: cfg.Endpoints.Java}
	result, err := supervisor.Run(ctx, ws.Dir, server.JavaArgs(cfg.MemoryMB, workspace.JarName, cfg.Args))
	if err != nil {
		return fmt.Errorf("error starting server: %w", err)
	}

	switch {
	case result.Interrupted:
		logger.Debug("[DEBUG] Server killed after interrupt\n")
	case result.ExitCode != 0:
		logger.Warn("[WARN] Server exited with code %d\n", result.ExitCode)
	}

	fmt.Println()
	logger.Info("[INFO] Server stopped. Files are kept in %s\n", ws.Dir)
	return nil
}

func dumpConfig(cfg *config.ServerConfig) {
	logger.Debug("[DEBUG] Software: %s\n", cfg.Software)
	logger.Debug("[DEBUG] Version: %s\n", cfg.Version)
	logger.Debug("[DEBUG] Working directory: %s\n", cfg.WorkDir)
	logger.Debug("[DEBUG] Memory: %dM\n", cfg.MemoryMB)
	logger.Debug("[DEBUG] Args:\n")
	for _, arg := range cfg.Args {
		logger.Debug(" > %s\n", arg)
	}
	logger.Debug("[DEBUG] Plugins:\n")
	for _, plugin := range cfg.Plugins {
		logger.Debug(" > %s\n", filepath.Base(plugin))
	}
}

// withSpinner shows a spinner while fn runs, unless quiet. Debug output would
// interleave with the spinner, so debug runs pass quiet.
func withSpinner(quiet bool, suffix string, fn func()) {
	if quiet {
		fn()
		return
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = suffix
	s.Start()
	fn()
	s.Stop()
}

// spinnerResolver shows a spinner while the download link is resolved.
type spinnerResolver struct {
	software.Resolver
	quiet bool
}

func (r *spinnerResolver) DownloadURL(ctx context.Context, ver string) (string, error) {
	var (
		url string
		err error
	)
	withSpinner(r.quiet, " Resolving download link...", func() {
		url, err = r.Resolver.DownloadURL(ctx, ver)
	})
	return url, err
}
