// Package services implements the driving port interfaces.
//
// The evaluation engine lives here: FactResolver, Classifier,
// Deduplicator, Bound and Orchestrator are pure and hold no package-level
// state, so a pass can be computed concurrently over the same snapshot.
// EvaluationService is the only component that talks to driven ports and
// it serialises writes of the notification set.
//
// Services are pure Go with no CGO or external dependencies.
package services
