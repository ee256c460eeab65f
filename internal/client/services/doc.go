// Package services holds the client-side application services: the
// session state machine, the cached task list and its statistics, the
// role projection and the debug helpers. Services own in-memory state,
// are safe for concurrent use, and reach the backend only through a
// client.Client.
package services
