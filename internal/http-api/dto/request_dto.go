package dto

// CreateBookRequestRequest: payload for submitting a new book request
type CreateBookRequestRequest struct {
	Title          string  `json:"title" binding:"required"`
	Author         string  `json:"author" binding:"required"`
	BookType       string  `json:"bookType"`
	AdditionalInfo *string `json:"additionalInfo"`
}

// UpdateBookRequestRequest: payload for moving a request through review.
// refusalComment is required when status is "refused".
type UpdateBookRequestRequest struct {
	Status         string  `json:"status" binding:"required"`
	RefusalComment *string `json:"refusalComment"`
}
