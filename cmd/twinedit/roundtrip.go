package main

import (
	"context"
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/twinedit/twinedit/compile"
	"github.com/twinedit/twinedit/editor"
	"github.com/twinedit/twinedit/graph"
	"github.com/twinedit/twinedit/ident"
	"github.com/twinedit/twinedit/render"
)

type roundtripConfig struct {
	*MainConfig
	Quiet bool `cli:"name=q aliases=quiet desc='only set the exit status'"`

	Roundtrip *cli.Command
}

// RoundtripCommand reports whether text survives a full
// text → graph → text pass unchanged.
func RoundtripCommand(mCfg *MainConfig) *cli.Command {
	cfg := &roundtripConfig{MainConfig: mCfg}
	opts, _ := cli.StructOpts(cfg)
	return cli.NewCommandAt(&cfg.Roundtrip, "roundtrip").
		WithSynopsis("roundtrip [file] - parse, render, compile, regenerate; report divergence").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *roundtripConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Roundtrip.Parse(cc, args)
	if err != nil {
		return err
	}
	text, err := readInput(cc, args)
	if err != nil {
		return err
	}
	sess, err := cfg.session()
	if err != nil {
		return err
	}
	ctx := context.Background()
	svc, closeSvc, err := cfg.services(ctx, sess)
	if err != nil {
		return err
	}
	defer closeSvc()

	p, err := svc.Parse(ctx, text)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	g := graph.New()
	ids := ident.New()
	ids.Reconcile(p)
	render.New(g, render.WithTable(table(sess))).Build(p)

	back, err := compile.New(g, ids, compile.WithTable(table(sess)), compile.WithIndentWidth(p.IndentWidth)).Compile()
	if err != nil {
		return fmt.Errorf("compile: %w", err)
	}
	out, err := svc.Generate(ctx, back)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	if out == text {
		if !cfg.Quiet {
			fmt.Fprintln(cc.Out, "round trip clean")
		}
		return nil
	}
	if !cfg.Quiet {
		fmt.Fprintln(cc.Out, "round trip diverged:")
		if r, ok := editor.ChangedRange(text, out); ok {
			fmt.Fprintf(cc.Out, "  first difference near line %d\n", r.Start.Line+1)
		}
		fmt.Fprint(cc.Out, out)
	}
	return cli.ExitCodeErr(1)
}
