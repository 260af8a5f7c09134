package ui

// Package ui contains the Fyne-based desktop user interface. The window has a
// Coordinates tab (obs/nav upload) and a Plotter tab (combo selection, job
// forms, progress and downloads) plus the saved files list and settings.
// All UI strings are localized via Localization.
