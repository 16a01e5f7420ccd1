package domain

import (
	"fmt"
	"strings"
)

// ActionKind discriminates the typed filesystem actions.
// The values mirror the tool names used by the filesystem backend.
type ActionKind string

const (
	// KindCreateDirectory creates a directory at a relative path.
	KindCreateDirectory ActionKind = "create_directory"

	// KindMoveEntry moves a file or folder from source to destination.
	KindMoveEntry ActionKind = "move_file"

	// KindOther marks a line that was recognized as a tool invocation but
	// could not be classified. It is shown to the operator and never executed.
	KindOther ActionKind = "other"
)

// Action represents a single proposed filesystem operation.
// Path is set for CreateDirectory; Source/Destination for MoveEntry.
// Raw always carries the original proposal line for display and audit.
type Action struct {
	Kind        ActionKind `json:"kind"`
	Path        string     `json:"path,omitempty"`
	Source      string     `json:"source,omitempty"`
	Destination string     `json:"destination,omitempty"`
	Raw         string     `json:"raw"`
}

// String renders the action for operator display.
func (a Action) String() string {
	switch a.Kind {
	case KindCreateDirectory:
		return fmt.Sprintf("create directory %q", a.Path)
	case KindMoveEntry:
		return fmt.Sprintf("move %q -> %q", a.Source, a.Destination)
	default:
		return a.Raw
	}
}

// Plan is an ordered sequence of actions extracted from one proposal.
// A revision always replaces the Plan wholesale; it is never patched.
type Plan struct {
	Actions []Action `json:"actions"`
}

// Empty reports whether the plan contains no actions at all.
func (p Plan) Empty() bool {
	return len(p.Actions) == 0
}

// Actionable reports whether the plan contains at least one executable action.
func (p Plan) Actionable() bool {
	return len(p.Creates())+len(p.Moves()) > 0
}

// Creates returns the CreateDirectory actions in their original order.
func (p Plan) Creates() []Action {
	return p.filter(KindCreateDirectory)
}

// Moves returns the MoveEntry actions in their original order.
func (p Plan) Moves() []Action {
	return p.filter(KindMoveEntry)
}

// Others returns the unrecognized actions in their original order.
func (p Plan) Others() []Action {
	return p.filter(KindOther)
}

func (p Plan) filter(kind ActionKind) []Action {
	var out []Action
	for _, a := range p.Actions {
		if a.Kind == kind {
			out = append(out, a)
		}
	}
	return out
}

// Summary renders the plan grouped by action kind as markdown.
// The output is deterministic: rendering the same plan twice yields
// identical text.
func (p Plan) Summary() string {
	if p.Empty() {
		return "No actionable plan steps were extracted from the proposal.\n"
	}

	var b strings.Builder
	b.WriteString("## Extracted Plan (review carefully)\n")

	writeGroup := func(title string, actions []Action) {
		if len(actions) == 0 {
			return
		}
		b.WriteString("\n### " + title + "\n")
		for _, a := range actions {
			b.WriteString("- " + a.String() + "\n")
		}
	}

	writeGroup("Directories to create", p.Creates())
	writeGroup("Files and folders to move", p.Moves())
	writeGroup("Other lines (will not be executed)", p.Others())

	return b.String()
}
