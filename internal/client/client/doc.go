// Package client is the gRPC side of the CLI: it holds the connection and the
// access token of the signed-in user and turns gRPC statuses into the errors
// declared in errors.go.
package client
