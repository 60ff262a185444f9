package types

// ConfirmationRequest represents a request for user confirmation before a
// destructive or surprising action
type ConfirmationRequest struct {
	// ID is a unique identifier for this confirmation within the run
	ID string

	// Title is a brief, user-friendly title describing what needs confirmation
	Title string

	// Description provides detailed information about what will happen
	Description string

	// Items lists specific items that will be affected (paths, packages)
	Items []string

	// Default indicates the default response if user just presses enter
	// true = default to "yes", false = default to "no"
	Default bool
}
