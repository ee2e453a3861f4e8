package domain

// NoticeKind classifies a user-visible message.
type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeFetchFailed
	NoticeAuthRequired
	NoticeSubmitFailed
	NoticeInvalidInput
)

func (k NoticeKind) String() string {
	switch k {
	case NoticeInfo:
		return "info"
	case NoticeFetchFailed:
		return "fetch failed"
	case NoticeAuthRequired:
		return "login required"
	case NoticeSubmitFailed:
		return "submit failed"
	case NoticeInvalidInput:
		return "invalid input"
	default:
		return "unknown"
	}
}

// IsError reports whether the notice reports a failure.
func (k NoticeKind) IsError() bool { return k != NoticeInfo }

// Notice is a fire-and-forget message for the user.
type Notice struct {
	Kind    NoticeKind
	Message string
}
