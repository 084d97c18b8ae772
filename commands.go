package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/LFroesch/burrow/internal/config"
	"github.com/LFroesch/burrow/internal/logger"
	"github.com/LFroesch/burrow/internal/utils"
)

// version is stamped by the release build.
var version = "dev"

var errNotATerminal = errors.New("burrow needs an interactive terminal")

type rootOptions struct {
	configPath string
	debug      bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "burrow [directory]",
		Short: "Browse, filter and fuzzy-find files in the terminal.",
		Example: `
burrow
burrow ~/src
burrow --hidden --editor "code -w" .
`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := opts.loadViper(cmd)
			if err != nil {
				return err
			}
			if err := v.BindPFlag("show_hidden", cmd.Flags().Lookup("hidden")); err != nil {
				return err
			}
			if err := v.BindPFlag("editor", cmd.Flags().Lookup("editor")); err != nil {
				return err
			}
			cfg := config.Load(v)
			defer logger.Close()
			return run(cfg, args)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ~/.config/burrow/config.toml)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "write debug messages to the log")
	cmd.Flags().Bool("hidden", false, "show hidden files")
	cmd.Flags().String("editor", "", "editor command used to open files")

	addConfig(cmd, opts)
	addVersion(cmd)
	return cmd
}

// loadViper resolves the config path and starts logging next to it.
func (o *rootOptions) loadViper(cmd *cobra.Command) (*viper.Viper, error) {
	path := o.configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	if err := logger.Init(filepath.Dir(path)); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: logging disabled: %v\n", err)
		logger.Disable()
	}
	logger.SetDebug(o.debug)
	return config.NewViper(path), nil
}

// run picks the start directory (argument, configured default, working
// directory) and hands the terminal to the browser.
func run(cfg *config.Config, args []string) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return errNotATerminal
	}

	dir := cfg.DefaultDirectory
	if len(args) == 1 {
		dir = args[0]
	}
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("cannot determine working directory: %w", err)
		}
		dir = wd
	}

	m, err := newModel(cfg, dir)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		m.shutdown()
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	return nil
}

func addConfig(topLevel *cobra.Command, opts *rootOptions) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration",
		Example: `
burrow config
BURROW_MAX_DEPTH=4 burrow config
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := opts.loadViper(cmd)
			if err != nil {
				return err
			}
			defer logger.Close()
			cfg := config.Load(v)

			bold := color.New(color.Bold).SprintFunc()
			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.MaxColWidth = 80
			tbl.Wrap = true
			tbl.AddRow(bold("Key"), bold("Value"))
			for _, s := range cfg.Settings() {
				tbl.AddRow(s.Key, s.Value)
			}

			_, _ = fmt.Fprintln(color.Output, bold("Config file: ")+cfg.Path())
			_, _ = fmt.Fprintln(color.Output, tbl)
			if strings.TrimSpace(cfg.Editor) != "" && !utils.CommandExists(strings.Fields(cfg.Editor)[0]) {
				_, _ = fmt.Fprintln(color.Output, color.YellowString("\neditor %q is not on PATH", cfg.Editor))
			}
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}

func addVersion(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "print the burrow version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			tbl := uitable.New()
			tbl.AddRow("version:", version)
			tbl.AddRow("go:", runtime.Version())
			tbl.AddRow("platform:", runtime.GOOS+"/"+runtime.GOARCH)
			_, _ = fmt.Fprintln(color.Output, tbl)
		},
	}
	topLevel.AddCommand(cmd)
}
