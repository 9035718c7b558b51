// Package commands defines the enigma CLI and wires dependencies for subcommands.
//
// Commands
//
//   - process        Encrypt or decrypt text
//   - settings       Print the resolved machine settings
//   - selftest       Round-trip fixed texts on the built-in machine
//   - shell          Interactive menu for configuring the machine
//   - keysheet       Generate, derive, show, list, publish and fetch key sheets
//   - catalog        Write, list or check the rotor, reflector and plugboard files
//
// # Machine selection
//
// Commands that run the machine take --rotors, --reflector, --plugboard and
// --positions to pick from the catalog, --sheet to load a sealed key sheet,
// or --password to derive every setting from a shared password.
//
// # Implementation
//
// The root command loads the configuration, applies flags on top and builds
// the dependency graph (stores, services, relay client) before any subcommand
// runs.
package commands
