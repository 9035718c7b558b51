// Package domain defines core data models and interfaces shared across the app.
// It contains plain types (machine specs, catalogs, key sheets, error kinds)
// and contracts (interfaces) only.
package domain
