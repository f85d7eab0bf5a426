package transport

// SaveStylesRequest carries the authored CSS. The field binds from JSON or
// from the css_content form field of the admin editor.
type SaveStylesRequest struct {
	CSSContent string `json:"cssContent" form:"css_content" validate:"max=1048576"`
}

// StylesResponse represents the stored stylesheet in API responses. CSS is
// the sanitized text as authored (the editor redisplays it); the minified
// form is what visitors are served.
type StylesResponse struct {
	CSS       string `json:"css"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// SaveStylesResponse is returned after a save and publish cycle.
type SaveStylesResponse struct {
	StylesResponse
	// RemovedTags lists the HTML tag names the sanitizer stripped, for
	// operator feedback in the editor.
	RemovedTags []string `json:"removedTags,omitempty"`
}
