package session

// Package session drives the plot dashboard: combo and form selection, job
// submission, progress polling and artifact downloads. State changes go
// through the pure Reduce function; Controller owns the live state, the
// poller and the observers.
