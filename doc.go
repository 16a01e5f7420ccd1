/*
Package ordna is a plan lifecycle controller for delegating file
reorganization to a language model while keeping a human in charge.

A planner proposes filesystem operations (create directory, move file) as
free text; ordna extracts a typed plan from it, walks the operator through a
propose/review/revise/approve loop, and only then executes the approved plan
inside a hard filesystem boundary.

# Concept

The controller owns the invariants: no action may target a path outside the
resolved boundary, directories are created before anything moves, execution
is strictly sequential and fail-fast, and every state transition is approved
by the operator. Everything else — how the proposal text is produced, how a
filesystem action is performed — sits behind two narrow ports (Proposer and
ToolExecutor) and is replaceable.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/caddan/ordna"
		"github.com/caddan/ordna/pkg/adapters/mcp"
		"github.com/caddan/ordna/pkg/adapters/ollama"
		"github.com/caddan/ordna/pkg/session"
	)

	func main() {
		ctx := context.Background()

		tools, err := mcp.New(ctx, "/home/me/downloads")
		if err != nil {
			log.Fatal(err)
		}
		defer tools.Close()

		org, err := ordna.New("/home/me/downloads",
			ordna.WithProposer(ollama.New("", ollama.WithSystem(session.Instructions("/home/me/downloads")))),
			ordna.WithToolExecutor(tools),
		)
		if err != nil {
			log.Fatal(err)
		}

		report, err := org.Run(ctx)
		if err != nil {
			log.Fatal(err)
		}
		if report != nil {
			log.Println(report.Summary())
		}
	}
*/
package ordna
