// Package models defines the client-side data models exchanged with the
// task backend: users and auth payloads, tasks, and task statistics.
package models
