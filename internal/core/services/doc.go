// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// All services are total with respect to their public contracts:
// infrastructure failures degrade to empty results and a log line,
// never to an error surfaced at the user.
package services
