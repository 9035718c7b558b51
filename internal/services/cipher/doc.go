// Package cipher turns configuration into running machines.
//
// It resolves a Selection against the catalog store (falling back to the
// built-in collections only when allowed), builds machines from key sheets,
// routes text through the symbol codec when asked, and provides the replay
// and self-test checks used by the CLI.
package cipher
