// Package mcp implements the ToolExecutor port over a Model Context
// Protocol filesystem server spawned on stdio.
//
// The default backend is the reference filesystem server
// (npx -y @modelcontextprotocol/server-filesystem <root>), which enforces
// its own sandbox on the root it is given.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/caddan/ordna/internal/logging"
	"github.com/caddan/ordna/pkg/domain"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

// Tool names exposed by the filesystem server.
const (
	toolListDirectory   = "list_directory"
	toolCreateDirectory = "create_directory"
	toolMoveFile        = "move_file"
)

// Client implements ports.ToolExecutor against a stdio MCP server.
type Client struct {
	mcp    *client.Client
	logger *slog.Logger
}

// Option configures the Client.
type Option func(*options)

type options struct {
	command string
	args    []string
	logger  *slog.Logger
}

// WithCommand overrides the server launch command. The working root is
// always appended as the final argument.
func WithCommand(command string, args ...string) Option {
	return func(o *options) {
		o.command = command
		o.args = args
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// New spawns the filesystem server rooted at root and completes the MCP
// handshake. A missing launcher binary is a setup failure
// (domain.ErrNoBackend); the caller should abort before any plan work.
func New(ctx context.Context, root string, opts ...Option) (*Client, error) {
	o := &options{
		command: "npx",
		args:    []string{"-y", "@modelcontextprotocol/server-filesystem"},
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}

	if _, err := exec.LookPath(o.command); err != nil {
		return nil, fmt.Errorf("%w: %q not found in PATH", domain.ErrNoBackend, o.command)
	}

	args := append(append([]string{}, o.args...), root)
	c, err := client.NewStdioMCPClient(o.command, nil, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to start %q: %v", domain.ErrNoBackend, o.command, err)
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    "ordna",
		Version: "0.1.0",
	}
	if _, err := c.Initialize(ctx, initReq); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("%w: initialize handshake failed: %v", domain.ErrNoBackend, err)
	}

	o.logger.Info("filesystem backend ready", "command", o.command, "root", root)
	return &Client{mcp: c, logger: o.logger}, nil
}

// ListDirectory returns the server's textual listing of a relative path.
func (c *Client) ListDirectory(ctx context.Context, path string) (string, error) {
	return c.call(ctx, toolListDirectory, map[string]any{"path": path})
}

// CreateDirectory creates a directory at a relative path.
func (c *Client) CreateDirectory(ctx context.Context, path string) error {
	_, err := c.call(ctx, toolCreateDirectory, map[string]any{"path": path})
	return err
}

// MoveEntry moves a file or folder from source to destination.
func (c *Client) MoveEntry(ctx context.Context, source, destination string) error {
	_, err := c.call(ctx, toolMoveFile, map[string]any{
		"source":      source,
		"destination": destination,
	})
	return err
}

// Close terminates the spawned server process.
func (c *Client) Close() error {
	return c.mcp.Close()
}

// call dispatches one tool invocation and flattens the text content of the
// result. A tool-level error becomes an opaque reason string.
func (c *Client) call(ctx context.Context, name string, args map[string]any) (string, error) {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	c.logger.Debug("calling tool", "tool", name, "args", args)
	res, err := c.mcp.CallTool(ctx, req)
	if err != nil {
		return "", fmt.Errorf("tool %s: %w", name, err)
	}

	text := flattenText(res.Content)
	if res.IsError {
		if text == "" {
			text = "tool reported an error without detail"
		}
		return "", fmt.Errorf("tool %s: %s", name, text)
	}
	return text, nil
}

func flattenText(content []mcp.Content) string {
	var parts []string
	for _, item := range content {
		if tc, ok := item.(mcp.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}
