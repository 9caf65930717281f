package meeting

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-records/internal/domain/entities"
	"github.com/johnquangdev/meeting-records/internal/domain/repositories"
)

// Service defines the interface for meeting use case
type Service interface {
	// ListMeetings retrieves all meetings, newest first
	ListMeetings(ctx context.Context) ([]*entities.Meeting, error)

	// GetMeeting retrieves one meeting by ID
	GetMeeting(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)

	// CreateMeeting validates the input and stores the meeting with its child rows
	CreateMeeting(ctx context.Context, input repositories.CreateMeetingInput) (*entities.Meeting, error)

	// DeleteMeeting deletes a meeting
	DeleteMeeting(ctx context.Context, id uuid.UUID) error

	// GetDepartments lists the distinct departments
	GetDepartments(ctx context.Context) ([]string, error)

	// GetStats aggregates meeting counts
	GetStats(ctx context.Context) (*entities.Stats, error)
}

// Ensure MeetingService implements Service interface
var _ Service = (*MeetingService)(nil)
