package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/scott-cotton/cli"

	"github.com/twinedit/twinedit/ctxlog"
	"github.com/twinedit/twinedit/editor"
	"github.com/twinedit/twinedit/engine"
	"github.com/twinedit/twinedit/graph"
)

type watchConfig struct {
	*MainConfig

	Watch *cli.Command
}

// WatchCommand keeps a live graph in sync with a file on disk:
// every write re-enters the controller as a text change, and sync
// errors land on stderr as they would in the editor's output area.
func WatchCommand(mCfg *MainConfig) *cli.Command {
	cfg := &watchConfig{MainConfig: mCfg}
	opts, _ := cli.StructOpts(cfg)
	return cli.NewCommandAt(&cfg.Watch, "watch").
		WithSynopsis("watch FILE - watch a file and resync on every write").
		WithOpts(opts...).
		WithRun(cfg.run)
}

func (cfg *watchConfig) run(cc *cli.Context, args []string) error {
	args, err := cfg.Watch.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: watch requires exactly one file", cli.ErrUsage)
	}
	path := args[0]
	sess, err := cfg.session()
	if err != nil {
		return err
	}
	ctx := ctxlog.WithLogger(context.Background(),
		slog.New(slog.NewTextHandler(os.Stderr, nil)))
	svc, closeSvc, err := cfg.services(ctx, sess)
	if err != nil {
		return err
	}
	defer closeSvc()

	text, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	buf := editor.NewBuffer(string(text))
	g := graph.New()
	// The controller is single-threaded; coalescing happens in the
	// select loop below instead of on a timer goroutine.
	deb := &engine.ManualDebouncer{}
	ctrl := engine.New(svc, buf, g,
		engine.WithDebouncer(deb),
		engine.WithTable(table(sess)),
		engine.WithOutput(func(msg string) {
			if msg == "" {
				fmt.Fprintf(os.Stderr, "%s: in sync\n", path)
				return
			}
			fmt.Fprintf(os.Stderr, "%s: %s\n", path, msg)
		}))
	ctrl.Attach(ctx)
	buf.Edit(string(text))
	deb.Fire()

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(path); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	var quiesce <-chan time.Time
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			d, err := os.ReadFile(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
				continue
			}
			buf.Edit(string(d))
			quiesce = time.After(sess.Debounce())
		case <-quiesce:
			quiesce = nil
			deb.Fire()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch: %v\n", err)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
