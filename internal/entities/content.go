package entities

// ContentKind is the closed set of importable content categories offered
// by the provider. Adding a new kind requires a matching import handler.
type ContentKind string

const (
	ContentKindAdventure  ContentKind = "adventure"
	ContentKindSourcebook ContentKind = "sourcebook"
	ContentKindHomebrew   ContentKind = "homebrew"
	ContentKindCharacter  ContentKind = "character"
)

// Valid reports whether the kind is one of the known categories.
func (k ContentKind) Valid() bool {
	switch k {
	case ContentKindAdventure, ContentKindSourcebook, ContentKindHomebrew, ContentKindCharacter:
		return true
	}
	return false
}

// DisplayName returns the human-readable name used in progress messages.
func (k ContentKind) DisplayName() string {
	switch k {
	case ContentKindAdventure:
		return "Adventure"
	case ContentKindSourcebook:
		return "Sourcebook"
	case ContentKindHomebrew:
		return "Homebrew Content"
	case ContentKindCharacter:
		return "Character"
	default:
		return "Content"
	}
}

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// Terminal reports whether a task can no longer change status.
func (s TaskStatus) Terminal() bool {
	return s == TaskStatusCompleted || s == TaskStatusFailed
}
