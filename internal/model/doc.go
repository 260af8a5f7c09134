package model

// Package model defines domain data structures used across the app: combos and
// their request skeletons, plot/archive job requests, API responses, form types
// and download kinds. Structures carry JSON tags matching the plotting API.
