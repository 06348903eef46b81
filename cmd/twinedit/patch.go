package main

import (
	"context"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/twinedit/twinedit/compile"
	"github.com/twinedit/twinedit/graph"
	"github.com/twinedit/twinedit/ident"
	"github.com/twinedit/twinedit/render"
)

type patchConfig struct {
	*MainConfig
	PatchFile string `cli:"name=p aliases=patch desc='merge patch file (RFC 7386, applied to the graph snapshot)'"`
	Snapshot  bool   `cli:"name=snapshot desc='print the patched snapshot instead of regenerated text'"`

	Patch *cli.Command
}

// PatchCommand scripts a graph edit: parse text, render the graph,
// merge-patch its snapshot, compile the result back, regenerate.
func PatchCommand(mCfg *MainConfig) *cli.Command {
	cfg := &patchConfig{MainConfig: mCfg}
	opts, _ := cli.StructOpts(cfg)
	return cli.NewCommandAt(&cfg.Patch, "patch").
		WithSynopsis("patch -p PATCH [file] - merge-patch the graph snapshot and regenerate").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *patchConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.PatchFile == "" {
		return fmt.Errorf("%w: patch requires -p", cli.ErrUsage)
	}
	patch, err := os.ReadFile(cfg.PatchFile)
	if err != nil {
		return fmt.Errorf("read patch: %w", err)
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

	if err := g.ApplyMergePatch(patch); err != nil {
		return fmt.Errorf("apply patch: %w", err)
	}
	if cfg.Snapshot {
		snap, err := g.Snapshot()
		if err != nil {
			return err
		}
		cc.Out.Write(snap)
		return nil
	}
	back, err := compile.New(g, ids, compile.WithTable(table(sess)), compile.WithIndentWidth(p.IndentWidth)).Compile()
	if err != nil {
		return fmt.Errorf("compile: %w", err)
	}
	out, err := svc.Generate(ctx, back)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	fmt.Fprint(cc.Out, out)
	return nil
}
