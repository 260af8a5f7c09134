package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconClose    = "×"
)

// Text fragments
const (
	DashPlaceholder    = "—"
	FieldListSeparator = ", "
	JSONIndent         = "  "
)

// Layout sizing
const (
	ComboCardWidth   float32 = 240
	ComboCardHeight  float32 = 260
	ComboImageHeight float32 = 160
)

// Toast notification sizing and behavior
const (
	ToastWidth    float32 = 300
	ToastHeight   float32 = 120
	ToastMargin   float32 = 20
	ToastAutoHide         = 5 * time.Second
)
