// Package client is the taskdesk request gateway. Every call to the
// backend goes through a Client, which attaches the stored session token
// and turns non-2xx responses into *APIError values. RequestSafe wraps a
// call into a Result so callers never handle errors for expected failures.
//
// The package also opens the local SQLite database the client keeps its
// session in.
package client
