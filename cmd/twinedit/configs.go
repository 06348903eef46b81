package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/twinedit/twinedit/config"
	"github.com/twinedit/twinedit/langsvc"
	"github.com/twinedit/twinedit/patterns"
)

const usageText = `twinedit - bidirectional text/graph program editor

Usage:
  twinedit roundtrip [file]       Parse, render, compile, regenerate; report divergence
  twinedit view [file]            Parse and pretty-print the program tree
  twinedit query -e EXPR [file]   Filter graph nodes with an expression
  twinedit patch -p PATCH [file]  Merge-patch the graph snapshot and regenerate
  twinedit watch FILE             Watch a file and resync on every write

Examples:
  twinedit roundtrip main.py
  twinedit view -color main.py
  twinedit query -e 'type == "assign"' main.py
  twinedit patch -p move.json main.py
  twinedit watch main.py`

type MainConfig struct {
	ConfigPath string `cli:"name=config aliases=c desc='session config (HCL)'"`
	Color      bool   `cli:"name=color desc='print with color'"`

	Main *cli.Command
}

// MainCommand builds the root command tree.
func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, _ := cli.StructOpts(cfg)
	return cli.NewCommandAt(&cfg.Main, "twinedit").
		WithSynopsis("twinedit - bidirectional text/graph program editor").
		WithDescription(usageText).
		WithOpts(opts...).
		WithSubs(
			RoundtripCommand(cfg),
			ViewCommand(cfg),
			QueryCommand(cfg),
			PatchCommand(cfg),
			WatchCommand(cfg),
		)
}

// session loads the HCL config, falling back to built-in defaults
// when no file was given.
func (cfg *MainConfig) session() (*config.Config, error) {
	if cfg.ConfigPath == "" {
		return config.Parse("defaults", nil)
	}
	return config.Load(cfg.ConfigPath)
}

// table applies the session's pattern toggles to the builtin table.
func table(sess *config.Config) *patterns.Table {
	return patterns.Default().Without(sess.Disabled)
}

// services connects the parser and generator endpoints. One shared
// "language" block yields one connection serving both roles.
func (cfg *MainConfig) services(ctx context.Context, sess *config.Config) (langsvc.Service, func() error, error) {
	pSvc := sess.Service("parser")
	gSvc := sess.Service("generator")
	if pSvc == nil || gSvc == nil {
		return nil, nil, fmt.Errorf("no language service configured (use -config)")
	}
	pc, err := connect(ctx, pSvc)
	if err != nil {
		return nil, nil, err
	}
	if gSvc == pSvc {
		return pc, pc.Close, nil
	}
	gc, err := connect(ctx, gSvc)
	if err != nil {
		pc.Close()
		return nil, nil, err
	}
	svc := struct {
		langsvc.Parser
		langsvc.Generator
	}{pc, gc}
	return svc, func() error {
		err := pc.Close()
		if gerr := gc.Close(); err == nil {
			err = gerr
		}
		return err
	}, nil
}

func connect(ctx context.Context, s *config.Service) (*langsvc.Client, error) {
	if s.Addr != "" {
		return langsvc.Dial(s.Addr)
	}
	return langsvc.Spawn(ctx, s.Command)
}

// colorsOn decides whether output gets color: the flag wins, and
// without it a terminal does.
func (cfg *MainConfig) colorsOn(w any) bool {
	if cfg.Color {
		return true
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name == "color" && opt.Value != nil {
			return false
		}
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

// readInput reads the named file, or stdin for "-" or no argument.
func readInput(cc *cli.Context, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		d, err := io.ReadAll(cc.In)
		if err != nil {
			return "", fmt.Errorf("error reading: %w", err)
		}
		return string(d), nil
	}
	d, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return string(d), nil
}
