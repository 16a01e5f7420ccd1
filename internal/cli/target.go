package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/caddan/ordna/pkg/boundary"
)

// selectTarget decides which directory the session will organize. A preset
// target is validated and returned without prompting; otherwise the operator
// is asked for a path until they name a directory inside the allowed root.
// An empty answer selects the root itself.
func selectTarget(ctx context.Context, in *bufio.Reader, out io.Writer, root, preset string, interactive bool) (string, error) {
	if preset != "" {
		target, err := validateTarget(preset, root)
		if err != nil {
			return "", fmt.Errorf("target directory: %w", err)
		}
		return target, nil
	}

	if !interactive {
		return root, nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		fmt.Fprintf(out, "Which directory should be organized? (under %s, Enter for the root itself)\n> ", root)
		line, err := in.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		answer := strings.TrimSpace(line)
		if answer == "" {
			return root, nil
		}

		target, err := validateTarget(answer, root)
		if err != nil {
			fmt.Fprintf(out, "%v\n", err)
			continue
		}
		return target, nil
	}
}

// validateTarget resolves a candidate path and checks that it is an existing
// directory contained in the allowed root.
func validateTarget(path, root string) (string, error) {
	resolved, err := boundary.Resolve(path)
	if err != nil {
		return "", fmt.Errorf("cannot resolve %q: %w", path, err)
	}
	if !boundary.IsWithin(resolved, root) {
		return "", fmt.Errorf("%q is outside the allowed root %q", resolved, root)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", fmt.Errorf("cannot access %q: %w", resolved, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%q is not a directory", resolved)
	}
	return resolved, nil
}
