package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/expr-lang/expr"
	"github.com/scott-cotton/cli"

	"github.com/twinedit/twinedit/graph"
	"github.com/twinedit/twinedit/render"
)

type queryConfig struct {
	*MainConfig
	Expr string `cli:"name=e aliases=expr desc='filter expression over graph nodes'"`

	Query *cli.Command
}

// QueryCommand filters graph nodes with an expression. Each node is
// exposed to the expression as id, type, fields, and slots.
func QueryCommand(mCfg *MainConfig) *cli.Command {
	cfg := &queryConfig{MainConfig: mCfg}
	opts, _ := cli.StructOpts(cfg)
	return cli.NewCommandAt(&cfg.Query, "query").
		WithSynopsis(`query -e EXPR [file] - filter graph nodes, e.g. -e 'type == "assign"'`).
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *queryConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Query.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Expr == "" {
		return fmt.Errorf("%w: query requires -e", cli.ErrUsage)
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
	render.New(g, render.WithTable(table(sess))).Build(p)

	prg, err := expr.Compile(cfg.Expr, expr.Env(nodeEnv(nil)), expr.AsBool())
	if err != nil {
		return fmt.Errorf("compile expression: %w", err)
	}
	nodes := g.Nodes()
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID() < nodes[j].ID() })
	for _, n := range nodes {
		res, err := expr.Run(prg, nodeEnv(n))
		if err != nil {
			return fmt.Errorf("run expression on node %d: %w", n.ID(), err)
		}
		if res.(bool) {
			fmt.Fprintf(cc.Out, "%d\t%s\t%v\n", n.ID(), n.Type(), nodeFields(n))
		}
	}
	return nil
}

// nodeEnv is one node's view for the filter expression. A nil node
// yields the shape used for expression type checking.
func nodeEnv(n *graph.Node) map[string]any {
	env := map[string]any{
		"id":     0,
		"type":   "",
		"fields": map[string]any{},
		"slots":  []string{},
	}
	if n == nil {
		return env
	}
	env["id"] = int(n.ID())
	env["type"] = string(n.Type())
	env["fields"] = nodeFields(n)
	env["slots"] = n.Slots()
	return env
}

func nodeFields(n *graph.Node) map[string]any {
	out := map[string]any{}
	for _, name := range n.FieldNames() {
		out[name] = n.Field(name)
	}
	return out
}
