package transport

// CreateClassRequest registers a utility class by hand, outside the
// annotation sync.
type CreateClassRequest struct {
	Name        string `json:"name" validate:"required,max=128"`
	Description string `json:"description" validate:"max=512"`
}

// ClassResponse represents a registered utility class.
type ClassResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Source      string `json:"source"`
	UpdatedAt   string `json:"updatedAt"`
}

// ListClassesResponse wraps the class listing.
type ListClassesResponse struct {
	Classes []ClassResponse `json:"classes"`
}
