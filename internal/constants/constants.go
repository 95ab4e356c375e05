package constants

// Session and context keys
const (
	SessionCookieName    = "crewtide_session"
	ContextKeyUserID     = "user_id"
	ContextKeyProject    = "project"
	ContextKeyMembership = "project_member"
)

// Validation limits
const (
	MinPasswordLength = 8
	MaxProjectName    = 60
	MaxDescription    = 200
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Invite codes
const (
	InviteCodeLength = 8
	// InviteCodeAlphabet omits visually ambiguous characters (I, O, 0, 1).
	InviteCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)
