// Package cli provides the interactive taskdesk command-line client.
//
// It wires configuration, the local session database, the API gateway and
// the services into a REPL. Two background watchers run while the REPL is
// open: one follows session changes made by other taskdesk processes
// sharing the same database, the other probes backend reachability.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
