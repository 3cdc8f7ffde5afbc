// Package domain defines the core business entities for fleetwatch.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Snapshot: Driver, vehicle, stock and repair records supplied per pass
//   - TrackedObligation: Something whose compliance is evaluated
//   - Classification: The compliance state derived for an obligation
//   - AlertCandidate / NotificationRecord: Alerts before and after emission
//   - NormalizedDate: A canonical instant parsed from Gregorian or BE input
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
