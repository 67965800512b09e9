// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the engine to function:
//
//   - FactStore: Fact persistence and access-stat bookkeeping
//   - ConversationStore: Append-only exchange log persistence
//   - Vectorizer: Text-to-vector conversion for similarity ranking
//   - ReplyStore: The predefined response set
//
// # Optional Interfaces
//
//   - ConfigStore: Engine tuning; defaults apply when absent
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
