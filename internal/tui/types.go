package tui

import "time"

type focusArea int

const (
	focusInput focusArea = iota
	focusSuggestions
)

const (
	brandName     = "Gyanam"
	heroTagline   = "Ask anything about credit cards. Get a straight answer."
	navLine       = "About · Contact"
	buttonLabel   = "Find my card"
	pendingLabel  = "Searching..."
	suggestHeader = "You might also ask:"
	idleHint      = "Type a question and press Enter. Answers appear here."
)

const (
	minViewportWidth          = 40
	viewportHorizontalPadding = 4
	inputCharLimit            = 240
	toastDuration             = 4 * time.Second
)
