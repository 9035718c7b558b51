// Package relay exchanges sealed key sheets over HTTP.
//
// The relay is a store-and-forward service: operators publish key sheets
// that are already sealed under a passphrase, and peers fetch them by name.
// This package offers both the HTTP client implementing domain.RelayClient
// and the in-memory Server behind the keysheetd binary.
//
// HTTP API
//
//	PUT /keysheets/{name}
//	    Store a sealed key sheet. Requires "Authorization: Bearer <token>".
//	GET /keysheets/{name}
//	    Return the sealed key sheet stored under {name}.
//	GET /keysheets
//	    Return {"names": [...]} in sorted order.
//	GET /healthz
//	    Liveness probe.
//
// All client requests accept a context for cancellation and deadlines.
// Non-2xx statuses are returned as *StatusError carrying the HTTP method,
// full URL and status; a 404 matches domain.ErrConfigurationNotFound.
package relay
