package main

import (
	"context"
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/twinedit/twinedit/ir"
)

type viewConfig struct {
	*MainConfig
	IDs bool `cli:"name=ids desc='show node identities'"`

	View *cli.Command
}

// ViewCommand pretty-prints the parsed program tree.
func ViewCommand(mCfg *MainConfig) *cli.Command {
	cfg := &viewConfig{MainConfig: mCfg}
	opts, _ := cli.StructOpts(cfg)
	return cli.NewCommandAt(&cfg.View, "view").
		WithSynopsis("view [file] - parse and pretty-print the program tree").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *viewConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
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
	d := &dumper{w: cc.Out, showIDs: cfg.IDs}
	if cfg.colorsOn(cc.Out) {
		d.colors = newColors()
	}
	for _, s := range p.Body.Stmts {
		d.node(ir.Node(s), 0)
	}
	return nil
}
