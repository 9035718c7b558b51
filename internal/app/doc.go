// Package app wires application dependencies for the CLI.
//
// It builds the concrete catalog and key sheet stores, the relay client and
// the high-level services from Config, exposing them via the Wire struct for
// commands to use. LoadConfig supplies defaults from the ENIGMA_*
// environment; flags override them.
package app
