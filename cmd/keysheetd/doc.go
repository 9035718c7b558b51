// Package main runs keysheetd, the HTTP relay that holds sealed key sheets so
// operators can exchange them. It only ever sees sealed blobs; opening one
// needs the passphrase it was sealed with.
//
// HTTP API
//
//	PUT /keysheets/{name}
//	    Store the sealed blob in the body. Requires "Authorization: Bearer
//	    <token>"; publishing is refused when the server has no token.
//
//	GET /keysheets/{name}
//	    Return the sealed blob stored under {name}.
//
//	GET /keysheets
//	    Return {"names": [...]} sorted by name.
//
//	GET /healthz
//	    Liveness probe.
//
// Behaviour
//
//   - All state is held in memory and lost on process exit.
//   - Responses are JSON. Non-2xx statuses carry a short error message.
//   - Each request is logged with method, path, status, bytes and duration.
//   - The listen address defaults to :8080 ($KEYSHEETD_ADDR) and the publish
//     token is read from $KEYSHEETD_TOKEN when --token is not given.
package main
