/*
Package ports defines the driven ports (interfaces) for the plan lifecycle
controller.

These interfaces decouple the core loop from external implementations,
allowing the controller to work with any proposal provider, filesystem
backend, or journal storage.

# Key Interfaces

  - Proposer: Produces free-form proposal text from a prompt.
  - ToolExecutor: Performs one named filesystem action and reports the result.
  - HistoryStore: Persists the session's decision journal.
*/
package ports
