/*
Package domain contains the core domain models for the ordna plan lifecycle.

It defines the typed filesystem actions extracted from a proposal, the Plan
that groups them, the ExecutionReport produced by replaying a Plan, and the
Decision journal entries. This package is kept pure and free of external
dependencies like I/O or persistence, following Hexagonal Architecture
principles.

# Key Entities

  - Action: One proposed filesystem operation (CreateDirectory, MoveEntry, or
    an unrecognized Other line kept for operator visibility).
  - Plan: The ordered action list pending operator approval.
  - ExecutionReport: Which actions completed, which failed, which were never
    attempted.
  - Decision: A single entry in the session's audit journal.
*/
package domain
