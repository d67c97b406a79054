package dto

// UpdateProgressRequest: payload for upserting one reading-progress row.
// bookId is required; the service reports its absence so the caller sees a
// specific message rather than a generic binding error. Status defaults to
// "unread" when omitted.
type UpdateProgressRequest struct {
	BookID string  `json:"bookId"`
	Status string  `json:"status"`
	Rating *int    `json:"rating"`
	Notes  *string `json:"notes"`
}
