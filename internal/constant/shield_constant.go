package constant

// Session states. Expiry is derived from EndTime, never stored as a state.
const (
	SessionStateActive   = "active"
	SessionStateInactive = "inactive"
)

// Decision cache partitions. A URL key lives in at most one at a time.
const (
	PartitionAllowed = "allowed"
	PartitionBlocked = "blocked"
)

// Navigation decision actions returned to the extension background script.
const (
	ActionAllow    = "allow"
	ActionRedirect = "redirect"
	ActionNone     = "none"
)

// WebSocket message kinds pushed to extension contexts.
const (
	WSKindStateChanged = "state_changed"
	WSKindTabRedirect  = "tab_redirect"
	WSKindDecision     = "decision"
)
