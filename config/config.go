// Package config loads session configuration from HCL: the debounce
// window, the indent width, the language-service endpoints, and
// builtin-pattern toggles.
package config

import (
	"fmt"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

const (
	DefaultDebounceMS  = 400
	DefaultIndentWidth = 4
)

// Config is one editor session's settings.
type Config struct {
	DebounceMS  int        `hcl:"debounce_ms,optional"`
	IndentWidth int        `hcl:"indent_width,optional"`
	Services    []*Service `hcl:"service,block"`
	Patterns    *Patterns  `hcl:"patterns,block"`
}

// Service names one external language service endpoint: either a TCP
// address or a command to spawn. Exactly one of the two is set.
type Service struct {
	Name    string   `hcl:"name,label"`
	Addr    string   `hcl:"addr,optional"`
	Command []string `hcl:"command,optional"`
}

// Patterns toggles entries of the builtin-call pattern table off.
type Patterns struct {
	Disable []string `hcl:"disable,optional"`
}

// evalCtx exposes the built-in defaults to config expressions, so a
// file can write e.g. `debounce_ms = default.debounce_ms * 2`.
func evalCtx() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"default": cty.ObjectVal(map[string]cty.Value{
				"debounce_ms":  cty.NumberIntVal(DefaultDebounceMS),
				"indent_width": cty.NumberIntVal(DefaultIndentWidth),
			}),
		},
	}
}

// Load reads and decodes one HCL config file.
func Load(path string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse config %s: %s", path, diags.Error())
	}
	return decode(path, file)
}

// Parse decodes config from memory. Tests use it.
func Parse(name string, src []byte) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, name)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse config %s: %s", name, diags.Error())
	}
	return decode(name, file)
}

func decode(name string, file *hcl.File) (*Config, error) {
	var cfg Config
	diags := gohcl.DecodeBody(file.Body, evalCtx(), &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("decode config %s: %s", name, diags.Error())
	}
	if cfg.DebounceMS == 0 {
		cfg.DebounceMS = DefaultDebounceMS
	}
	if cfg.IndentWidth == 0 {
		cfg.IndentWidth = DefaultIndentWidth
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", name, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	for _, s := range c.Services {
		switch s.Name {
		case "parser", "generator", "language":
		default:
			return fmt.Errorf("unknown service %q", s.Name)
		}
		if s.Addr == "" && len(s.Command) == 0 {
			return fmt.Errorf("service %q needs addr or command", s.Name)
		}
		if s.Addr != "" && len(s.Command) > 0 {
			return fmt.Errorf("service %q has both addr and command", s.Name)
		}
	}
	return nil
}

// Debounce returns the coalescing window as a duration.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// Service finds a named service block; "language" serves both roles
// when a role-specific block is absent.
func (c *Config) Service(name string) *Service {
	var lang *Service
	for _, s := range c.Services {
		if s.Name == name {
			return s
		}
		if s.Name == "language" {
			lang = s
		}
	}
	return lang
}

// Disabled reports whether a builtin pattern is toggled off.
func (c *Config) Disabled(fn string) bool {
	if c.Patterns == nil {
		return false
	}
	for _, d := range c.Patterns.Disable {
		if d == fn {
			return true
		}
	}
	return false
}
