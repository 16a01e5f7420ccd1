package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// ContentRenderer transforms content before output. This allows TUI
// rendering (markdown to ANSI) without coupling the loop to a renderer.
type ContentRenderer func(string) (string, error)

// IOHandler is the strategy for talking to the operator. It keeps the loop
// testable and independent of the concrete frontend.
type IOHandler interface {
	// Output presents content to the operator.
	Output(content string) error

	// Input reads one line of operator input.
	Input(ctx context.Context) (string, error)
}

// TextHandler implements the standard line-oriented text interface.
type TextHandler struct {
	Reader   *bufio.Reader
	Writer   io.Writer
	Renderer ContentRenderer
}

// NewTextHandler creates a handler for standard text IO.
func NewTextHandler(r io.Reader, w io.Writer) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &TextHandler{
		Reader: bufio.NewReader(r),
		Writer: w,
	}
}

func (h *TextHandler) Output(content string) error {
	if h.Renderer != nil {
		if rendered, err := h.Renderer(content); err == nil {
			content = rendered
		}
	}
	_, err := fmt.Fprintln(h.Writer, strings.TrimRight(content, "\n"))
	return err
}

func (h *TextHandler) Input(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(h.Writer, "> ")

	text, err := h.Reader.ReadString('\n')
	if err != nil && (err != io.EOF || text == "") {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
