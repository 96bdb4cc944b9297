package entities

import "strings"

// DefaultMeetingName is used when a trigger carries no usable meeting name
const DefaultMeetingName = "General"

// SourceKind identifies one of the external data sources consulted for a brief
type SourceKind int

const (
	SourceMail SourceKind = iota
	SourceIssueTracker
	SourceCRM
)

// String returns a human-readable source name for logging
func (k SourceKind) String() string {
	switch k {
	case SourceMail:
		return "mail"
	case SourceIssueTracker:
		return "issue_tracker"
	case SourceCRM:
		return "crm"
	default:
		return "unknown"
	}
}

// MeetingQuery is the parsed trigger: the meeting name used to filter all
// three sources plus any mail recipients requested by a slash command.
// Immutable after creation, scoped to a single request.
type MeetingQuery struct {
	Name       string   `json:"name"`
	Recipients []string `json:"recipients,omitempty"`
}

// SourceResult is one adapter's contribution to a brief. Text is always
// display-ready: a summary, the adapter's no-results sentinel, or its error
// sentinel. Adapters never surface errors past their boundary.
type SourceResult struct {
	Kind SourceKind `json:"kind"`
	Text string     `json:"text"`
}

// MeetingBrief is the synthesized output delivered back to the user
type MeetingBrief struct {
	MeetingName string `json:"meeting_name"`
	Body        string `json:"body"`
}

// Subject returns the mail subject line for the brief
func (b MeetingBrief) Subject() string {
	return "Meeting Brief: " + b.MeetingName
}

// QueryFromSlashText parses the free-text argument of a slash command.
// The first whitespace token is the meeting name and the second token is a
// comma-separated recipient list; entries without an "@" are dropped. A
// multi-word meeting name is therefore truncated to its first token, which
// matches the reference behavior.
func QueryFromSlashText(text string) MeetingQuery {
	parts := strings.Fields(text)

	q := MeetingQuery{Name: DefaultMeetingName}
	if len(parts) > 0 {
		q.Name = parts[0]
	}
	if len(parts) > 1 {
		for _, addr := range strings.Split(parts[1], ",") {
			addr = strings.TrimSpace(addr)
			if strings.Contains(addr, "@") {
				q.Recipients = append(q.Recipients, addr)
			}
		}
	}
	return q
}

// QueryFromMentionText parses an app-mention message. The leading token is
// the bot's own name, so the meeting name is everything after the first
// whitespace; when nothing usable remains the default name is used.
func QueryFromMentionText(text string) MeetingQuery {
	idx := strings.Index(text, " ")
	if idx < 0 {
		return MeetingQuery{Name: DefaultMeetingName}
	}
	name := strings.TrimSpace(text[idx+1:])
	if name == "" {
		return MeetingQuery{Name: DefaultMeetingName}
	}
	return MeetingQuery{Name: name}
}
