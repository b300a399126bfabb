// Package model defines the shared domain types for the matching-engine client.
//
// Conventions:
//   - Prices and quantities: integer ticks, as reported by the engine
//   - Timestamps: int64 nanoseconds since Unix epoch (engine clock)
//   - IDs: int64 for order and client ids, uuid.UUID for journal records
package model
