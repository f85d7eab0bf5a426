package transport

// UpdateNoticeResponse reports the state of the last update check.
type UpdateNoticeResponse struct {
	Available    bool   `json:"available"`
	Latest       string `json:"latest,omitempty"`
	URL          string `json:"url,omitempty"`
	Notes        string `json:"notes,omitempty"`
	CheckedAt    string `json:"checkedAt,omitempty"`
	Dismissed    bool   `json:"dismissed"`
	DismissedFor string `json:"dismissedFor,omitempty"`
}
