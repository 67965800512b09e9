// Package domain defines the core business entities for Factotum.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Fact: A unit of stored knowledge with importance and access stats
//   - Exchange: One user/assistant turn in the conversation log
//   - RankedFact: A fact scored against a query
//   - Resolution: The outcome of resolving a query through the tiers
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
