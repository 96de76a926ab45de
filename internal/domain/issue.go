package domain

import "time"

// IssueType enumerates the fixed set of issue categories. The string
// values are the wire format and must not be altered.
type IssueType string

const (
	IssueTypeServiceRequest   IssueType = "Service request"
	IssueTypeIncidentReport   IssueType = "Incident report"
	IssueTypeBug              IssueType = "Bug"
	IssueTypeAccountAndAccess IssueType = "Account and Access"
)

// ParseIssueType validates a wire value against the enumeration.
func ParseIssueType(value string) (IssueType, bool) {
	switch IssueType(value) {
	case IssueTypeServiceRequest, IssueTypeIncidentReport, IssueTypeBug, IssueTypeAccountAndAccess:
		return IssueType(value), true
	}
	return "", false
}

// Issue is the aggregate for a support request. Title and description
// are stored verbatim; escaping is a presentation concern.
type Issue struct {
	ID          string
	Title       string
	Description string
	Type        IssueType
	UserID      string
	IsResolved  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
