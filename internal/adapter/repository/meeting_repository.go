package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "github.com/johnquangdev/meeting-records/errors"
	"github.com/johnquangdev/meeting-records/internal/domain/entities"
	"github.com/johnquangdev/meeting-records/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/meeting-records/internal/usecase/errors"
)

// meetingRepository implements the MeetingRepository interface
type meetingRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *gorm.DB, logger *zap.Logger) repositories.MeetingRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &meetingRepository{db: db, logger: logger}
}

// fail logs a store error and wraps it so callers can tell store failures apart
func (r *meetingRepository) fail(op string, err error) error {
	r.logger.Error("meeting.repository.error",
		zap.String("operation", op),
		zap.Error(err),
	)
	return apperrors.ErrDBQueryFailed(op, err)
}

func orderConclusions(db *gorm.DB) *gorm.DB {
	return db.Order("order_index ASC")
}

// ListMeetings retrieves all meetings, newest first
func (r *meetingRepository) ListMeetings(ctx context.Context) ([]*entities.Meeting, error) {
	meetings := make([]*entities.Meeting, 0)
	err := r.db.WithContext(ctx).
		Preload("Participants").
		Preload("Conclusions", orderConclusions).
		Order("created_at DESC").
		Find(&meetings).Error
	if err != nil {
		return nil, r.fail("list_meetings", err)
	}
	if meetings == nil {
		meetings = []*entities.Meeting{}
	}
	return meetings, nil
}

// FindByID retrieves a meeting by ID
func (r *meetingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	var meeting entities.Meeting
	err := r.db.WithContext(ctx).
		Preload("Participants").
		Preload("Conclusions", orderConclusions).
		Where("id = ?", id).
		First(&meeting).Error
	if err != nil {
		if apperrors.Is(err, gorm.ErrRecordNotFound) {
			appErr := apperrors.ErrMeetingNotFound(id.String())
			appErr.Raw = usecaseErrors.ErrNotFound
			return nil, appErr
		}
		return nil, r.fail("find_meeting", err)
	}
	return &meeting, nil
}

// CreateMeeting inserts a meeting followed by its participants and conclusions.
// The three inserts are independent statements: a failure part way through
// leaves the earlier rows in place.
func (r *meetingRepository) CreateMeeting(ctx context.Context, input repositories.CreateMeetingInput) (*entities.Meeting, error) {
	db := r.db.WithContext(ctx)

	processCount := entities.CountOrZero(input.ProcessCount)
	systemCount := entities.CountOrZero(input.SystemCount)
	findingCount := entities.CountOrZero(input.FindingCount)

	meeting := &entities.Meeting{
		Title:        input.Title,
		Date:         input.Date,
		Department:   input.Department,
		Objective:    input.Objective,
		RawContent:   input.RawContent,
		ProcessCount: &processCount,
		SystemCount:  &systemCount,
		FindingCount: &findingCount,
	}
	if err := db.Create(meeting).Error; err != nil {
		return nil, r.fail("create_meeting", err)
	}

	if len(input.Participants) > 0 {
		participants := make([]*entities.Participant, 0, len(input.Participants))
		for _, name := range input.Participants {
			participants = append(participants, &entities.Participant{
				MeetingID: meeting.ID,
				Name:      name,
			})
		}
		if err := db.Create(&participants).Error; err != nil {
			return nil, r.fail("create_participants", err)
		}
		meeting.Participants = participants
	}

	if len(input.Conclusions) > 0 {
		conclusions := make([]*entities.Conclusion, 0, len(input.Conclusions))
		for i, text := range input.Conclusions {
			conclusions = append(conclusions, &entities.Conclusion{
				MeetingID:  meeting.ID,
				Conclusion: text,
				OrderIndex: i,
			})
		}
		if err := db.Create(&conclusions).Error; err != nil {
			return nil, r.fail("create_conclusions", err)
		}
		meeting.Conclusions = conclusions
	}

	return meeting, nil
}

// DeleteMeeting deletes a meeting; child rows go with it through the FK cascade
func (r *meetingRepository) DeleteMeeting(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&entities.Meeting{}).Error
	if err != nil {
		return r.fail("delete_meeting", err)
	}
	return nil
}

// GetDepartments returns distinct departments in the store's sort order
func (r *meetingRepository) GetDepartments(ctx context.Context) ([]string, error) {
	var rows []string
	err := r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("department IS NOT NULL").
		Order("department ASC").
		Pluck("department", &rows).Error
	if err != nil {
		return nil, r.fail("get_departments", err)
	}

	seen := make(map[string]struct{}, len(rows))
	departments := make([]string, 0, len(rows))
	for _, d := range rows {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		departments = append(departments, d)
	}
	return departments, nil
}

type meetingCounts struct {
	ProcessCount *int
	SystemCount  *int
	FindingCount *int
}

// GetStats sums the count columns; NULL counts as zero
func (r *meetingRepository) GetStats(ctx context.Context) (*entities.Stats, error) {
	var rows []meetingCounts
	err := r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Select("process_count, system_count, finding_count").
		Find(&rows).Error
	if err != nil {
		return nil, r.fail("get_stats", err)
	}

	stats := &entities.Stats{TotalMeetings: len(rows)}
	for _, row := range rows {
		stats.TotalProcesses += entities.CountOrZero(row.ProcessCount)
		stats.TotalSystems += entities.CountOrZero(row.SystemCount)
		stats.TotalFindings += entities.CountOrZero(row.FindingCount)
	}
	return stats, nil
}
