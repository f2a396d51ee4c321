package audit

import (
	"time"

	id "datencheck/pkg/domain"
)

// Event records a user decision about a validation finding. It is transport
// agnostic; stores decide how to persist or forward it.
type Event struct {
	ID        id.EventID `json:"id"`
	Timestamp time.Time  `json:"timestamp"`
	Action    Action     `json:"action"`
	TreeID    id.TreeID  `json:"tree_id"`
	Xref      id.Xref    `json:"xref"`
	Code      string     `json:"code"`
	User      string     `json:"user,omitempty"`
	Comment   string     `json:"comment,omitempty"`
}

// Action names the decision recorded by an Event.
type Action string

const (
	ActionIssueIgnored   Action = "issue_ignored"
	ActionIssueUnignored Action = "issue_unignored"
)

// PartitionKey groups all events of one person onto one partition.
func (e Event) PartitionKey() string {
	return e.TreeID.String() + "/" + e.Xref.String()
}
