package dto

// CreateIssueRequest payload.
type CreateIssueRequest struct {
	Title       string `json:"title" form:"title"`
	Type        string `json:"type" form:"type"`
	Description string `json:"description" form:"description"`
}

// UpdateIssueRequest carries a sparse patch; omitted fields stay
// unchanged.
type UpdateIssueRequest struct {
	Title       *string `json:"title" form:"title"`
	Type        *string `json:"type" form:"type"`
	Description *string `json:"description" form:"description"`
}

// IssueResponse is the wire form of an issue.
type IssueResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Description string `json:"description"`
	UserID      string `json:"user_id"`
	IsResolved  bool   `json:"is_resolved"`
}
