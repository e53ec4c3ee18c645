// Package session models the storefront's authentication state and the
// per-user collections that depend on it: addresses, payment methods,
// and order history.
//
// The Store owns exactly one identity at a time. Login and Register are
// simulated network calls: a fixed latency, placeholder validation, and
// fixed seed data in place of real per-user records. The identity is
// persisted to a single client-local key (see Storage) and restored on
// startup; collections are re-seeded from the same mock data on every
// restore, a deliberate simulation shortcut.
//
// The cart is intentionally outside this package: cart contents survive
// logout.
package session
