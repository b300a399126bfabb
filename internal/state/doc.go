// Package state implements the event reconciler and the observable Book
// container holding the client's derived view of engine truth.
//
// Reconciliation itself is a pure function over two collections (open orders,
// closed trades); the Book owns the single mutable copy, replaces it after
// each applied event, and notifies its change channel so that presentation
// and journaling stay decoupled from the reconciliation rules.
package state
