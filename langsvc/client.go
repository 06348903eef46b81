package langsvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os/exec"

	"go.lsp.dev/jsonrpc2"

	"github.com/twinedit/twinedit/debug"
	"github.com/twinedit/twinedit/ir"
)

// Client speaks the service protocol over one JSON-RPC 2 connection.
type Client struct {
	conn jsonrpc2.Conn
	mode Mode
	cmd  *exec.Cmd
}

type Option func(*Client)

func WithMode(m Mode) Option {
	return func(c *Client) {
		c.mode = m
	}
}

// NewClient wraps an established stream. The connection is served
// immediately; the service never calls back, so unknown inbound
// requests are rejected.
func NewClient(rwc io.ReadWriteCloser, opts ...Option) *Client {
	c := &Client{
		conn: jsonrpc2.NewConn(jsonrpc2.NewStream(rwc)),
		mode: ModeLossless,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.conn.Go(context.Background(), jsonrpc2.MethodNotFoundHandler)
	return c
}

// Dial connects to a service listening on a TCP address.
func Dial(addr string, opts ...Option) (*Client, error) {
	nc, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial language service: %w", err)
	}
	return NewClient(nc, opts...), nil
}

// Spawn starts a service subprocess and connects over its stdio.
func Spawn(ctx context.Context, command []string, opts ...Option) (*Client, error) {
	if len(command) == 0 {
		return nil, fmt.Errorf("spawn language service: empty command")
	}
	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("spawn language service: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("spawn language service: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("spawn language service: %w", err)
	}
	c := NewClient(&pipeStream{read: stdout, write: stdin}, opts...)
	c.cmd = cmd
	return c, nil
}

func (c *Client) Close() error {
	err := c.conn.Close()
	if c.cmd != nil {
		if werr := c.cmd.Wait(); err == nil {
			err = werr
		}
	}
	return err
}

type parseParams struct {
	Text string `json:"text"`
	Mode Mode   `json:"mode"`
}

type parseResult struct {
	Program json.RawMessage `json:"program"`
}

type generateParams struct {
	Program json.RawMessage `json:"program"`
	Mode    Mode            `json:"mode"`
}

type generateResult struct {
	Text string `json:"text"`
}

func (c *Client) Parse(ctx context.Context, text string) (*ir.Program, error) {
	if debug.Svc() {
		debug.Logf("svc: parse, %d bytes", len(text))
	}
	var res parseResult
	_, err := c.conn.Call(ctx, MethodParse, &parseParams{Text: text, Mode: c.mode}, &res)
	if err != nil {
		if debug.Svc() {
			debug.Logf("svc: parse failed: %s", rpcMessage(err))
		}
		return nil, &ParseError{Msg: rpcMessage(err)}
	}
	p, err := ir.UnmarshalProgram(res.Program)
	if err != nil {
		return nil, fmt.Errorf("decode parsed program: %w", err)
	}
	if debug.Svc() {
		debug.LogAny(p)
	}
	return p, nil
}

func (c *Client) Generate(ctx context.Context, p *ir.Program) (string, error) {
	d, err := ir.MarshalProgram(p)
	if err != nil {
		return "", fmt.Errorf("encode program: %w", err)
	}
	if debug.Svc() {
		debug.Logf("svc: generate, %d program bytes", len(d))
	}
	var res generateResult
	_, err = c.conn.Call(ctx, MethodGenerate, &generateParams{Program: d, Mode: c.mode}, &res)
	if err != nil {
		if debug.Svc() {
			debug.Logf("svc: generate failed: %s", rpcMessage(err))
		}
		return "", &GenerationError{Msg: rpcMessage(err)}
	}
	return res.Text, nil
}

// rpcMessage strips the transport framing off a call error so the
// service's own diagnostic text survives.
func rpcMessage(err error) string {
	var rpcErr *jsonrpc2.Error
	if errors.As(err, &rpcErr) {
		return rpcErr.Message
	}
	return err.Error()
}

// pipeStream joins a subprocess's stdout and stdin into one stream.
type pipeStream struct {
	read  io.ReadCloser
	write io.WriteCloser
}

func (s *pipeStream) Read(p []byte) (int, error) {
	return s.read.Read(p)
}

func (s *pipeStream) Write(p []byte) (int, error) {
	return s.write.Write(p)
}

func (s *pipeStream) Close() error {
	err := s.write.Close()
	if rerr := s.read.Close(); err == nil {
		err = rerr
	}
	return err
}
