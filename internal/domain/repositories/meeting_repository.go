package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/johnquangdev/meeting-records/internal/domain/entities"
)

// CreateMeetingInput carries the fields for a new meeting and its child rows
type CreateMeetingInput struct {
	Title        string
	Date         string
	Department   *string
	Objective    *string
	RawContent   *string
	ProcessCount *int
	SystemCount  *int
	FindingCount *int
	Participants []string
	Conclusions  []string
}

// MeetingRepository defines the interface for meeting data access
type MeetingRepository interface {
	// ListMeetings returns every meeting with its participants and conclusions, newest first
	ListMeetings(ctx context.Context) ([]*entities.Meeting, error)

	// FindByID retrieves one meeting with its participants and conclusions
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)

	// CreateMeeting inserts the meeting, then its participants, then its conclusions
	CreateMeeting(ctx context.Context, input CreateMeetingInput) (*entities.Meeting, error)

	// DeleteMeeting deletes the meeting with the given ID
	DeleteMeeting(ctx context.Context, id uuid.UUID) error

	// GetDepartments returns the distinct non-empty departments
	GetDepartments(ctx context.Context) ([]string, error)

	// GetStats aggregates the count columns over all meetings
	GetStats(ctx context.Context) (*entities.Stats, error)
}
