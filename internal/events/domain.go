package events

// Event names, for subscribing without constructing an event value.
const (
	StylesSavedEventName     = "styles.saved"
	UpdateAvailableEventName = "updates.available"
)

// StylesSaved fires after a save and publish cycle completes, carrying the
// sanitized (non-minified) CSS as stored. Consumers use it for cache
// invalidation and for re-syncing derived data such as the class registry.
type StylesSaved struct {
	BaseEvent
	CSS string
}

// EventName returns the unique identifier for this event type.
func (StylesSaved) EventName() string { return StylesSavedEventName }

// UpdateAvailable fires when the release feed reports a version newer than
// the running one.
type UpdateAvailable struct {
	BaseEvent
	CurrentVersion string
	LatestVersion  string
	ReleaseURL     string
	Notes          string
}

// EventName returns the unique identifier for this event type.
func (UpdateAvailable) EventName() string { return UpdateAvailableEventName }
