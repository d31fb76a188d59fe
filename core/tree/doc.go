// Package tree defines the capability-set interface over the external
// modeling application's branch tree, plus an in-memory implementation
// that simulates tree state for tests and dry runs.
//
// The external tree is a mutable, order-sensitive structure owned by a
// single application instance. This core only consumes the Adapter
// interface; the live connection (COM automation, RPC, whatever the
// deployment uses) implements it elsewhere.
package tree
