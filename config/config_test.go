package config

import (
	"strings"
	"testing"
	"time"
)

func parse(t *testing.T, src string) *Config {
	t.Helper()
	cfg, err := Parse("test.hcl", []byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return cfg
}

func TestParseFull(t *testing.T) {
	cfg := parse(t, `
debounce_ms  = 250
indent_width = 2

service "parser" {
  command = ["pyls", "--stdio"]
}

service "generator" {
  addr = "127.0.0.1:9472"
}

patterns {
  disable = ["sleep", "random"]
}
`)
	if cfg.DebounceMS != 250 || cfg.IndentWidth != 2 {
		t.Fatalf("debounce = %d indent = %d", cfg.DebounceMS, cfg.IndentWidth)
	}
	if got := cfg.Debounce(); got != 250*time.Millisecond {
		t.Fatalf("Debounce() = %v", got)
	}
	p := cfg.Service("parser")
	if p == nil || len(p.Command) != 2 || p.Command[0] != "pyls" {
		t.Fatalf("parser service = %#v", p)
	}
	g := cfg.Service("generator")
	if g == nil || g.Addr != "127.0.0.1:9472" {
		t.Fatalf("generator service = %#v", g)
	}
	if !cfg.Disabled("sleep") || cfg.Disabled("print") {
		t.Fatalf("pattern toggles wrong: %#v", cfg.Patterns)
	}
}

func TestDefaults(t *testing.T) {
	cfg := parse(t, "")
	if cfg.DebounceMS != DefaultDebounceMS {
		t.Fatalf("debounce = %d, want %d", cfg.DebounceMS, DefaultDebounceMS)
	}
	if cfg.IndentWidth != DefaultIndentWidth {
		t.Fatalf("indent = %d, want %d", cfg.IndentWidth, DefaultIndentWidth)
	}
	if cfg.Service("parser") != nil {
		t.Fatalf("service resolved with no blocks")
	}
	if cfg.Disabled("print") {
		t.Fatal("pattern disabled with no patterns block")
	}
}

func TestDefaultVariableInExpressions(t *testing.T) {
	cfg := parse(t, "debounce_ms = default.debounce_ms * 2\n")
	if cfg.DebounceMS != 2*DefaultDebounceMS {
		t.Fatalf("debounce = %d, want %d", cfg.DebounceMS, 2*DefaultDebounceMS)
	}
}

func TestLanguageBlockServesBothRoles(t *testing.T) {
	cfg := parse(t, `
service "language" {
  command = ["pyls"]
}
`)
	p := cfg.Service("parser")
	g := cfg.Service("generator")
	if p == nil || g == nil {
		t.Fatal("language block did not cover both roles")
	}
	if p != g {
		t.Fatal("roles resolved to different blocks")
	}
}

func TestRoleBlockWinsOverLanguage(t *testing.T) {
	cfg := parse(t, `
service "language" {
  command = ["pyls"]
}

service "parser" {
  addr = "127.0.0.1:9000"
}
`)
	if p := cfg.Service("parser"); p == nil || p.Addr != "127.0.0.1:9000" {
		t.Fatalf("parser = %#v, want the dedicated block", p)
	}
	if g := cfg.Service("generator"); g == nil || len(g.Command) != 1 {
		t.Fatalf("generator = %#v, want the language fallback", g)
	}
}

func TestValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "unknown service name",
			src:  "service \"formatter\" {\n  addr = \"x:1\"\n}\n",
			want: "unknown service",
		},
		{
			name: "neither addr nor command",
			src:  "service \"parser\" {\n}\n",
			want: "needs addr or command",
		},
		{
			name: "both addr and command",
			src:  "service \"parser\" {\n  addr = \"x:1\"\n  command = [\"pyls\"]\n}\n",
			want: "both addr and command",
		},
		{
			name: "hcl syntax error",
			src:  "service {",
			want: "parse config",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse("bad.hcl", []byte(c.src))
			if err == nil {
				t.Fatal("parse succeeded, want error")
			}
			if !strings.Contains(err.Error(), c.want) {
				t.Fatalf("err = %v, want substring %q", err, c.want)
			}
		})
	}
}
