// Package cli implements the interactive command-line client: a small REPL
// that signs in over gRPC and manages the signed-in user's tasks.
package cli
