package constant

// Session modes. A session always sits in exactly one mode; the dispatcher
// reads it back on every inbound message.
const (
	SessionModeNew              = "NEW"
	SessionModeWelcomed         = "WELCOMED"
	SessionModeActive           = "ACTIVE"
	SessionModeAwaitingReport   = "AWAITING_REPORT"
	SessionModeAwaitingFeedback = "AWAITING_FEEDBACK"
)

// Bug report statuses for the admin surface.
const (
	ReportStatusOpen       = "open"
	ReportStatusInProgress = "in_progress"
	ReportStatusResolved   = "resolved"
)
