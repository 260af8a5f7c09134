package download

// Package download saves the artifacts of finished plot jobs (result image,
// image archive, animation) to the download directory. It tracks each save as
// a task and reports task updates to the UI through a callback.
