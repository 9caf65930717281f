package meeting

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-records/errors"
	"github.com/johnquangdev/meeting-records/internal/domain/entities"
	"github.com/johnquangdev/meeting-records/internal/domain/repositories"
	"github.com/johnquangdev/meeting-records/internal/infrastructure/cache"
	usecaseErrors "github.com/johnquangdev/meeting-records/internal/usecase/errors"
	pkgvalidator "github.com/johnquangdev/meeting-records/pkg/validator"
)

const (
	departmentsCacheKey = "meetings:departments"
	statsCacheKey       = "meetings:stats"
)

// MeetingService handles meeting business logic
type MeetingService struct {
	meetingRepo repositories.MeetingRepository
	validator   *pkgvalidator.CustomValidator
	logger      *zap.Logger
	cache       cache.Store
	cacheTTL    time.Duration

	// generation is bumped by every invalidation; a read only caches its
	// result if no write completed while it was running
	generation atomic.Uint64
}

// Option configures a MeetingService
type Option func(*MeetingService)

// WithCache serves departments and stats from store for ttl
func WithCache(store cache.Store, ttl time.Duration) Option {
	return func(s *MeetingService) {
		s.cache = store
		s.cacheTTL = ttl
	}
}

// WithLogger sets the service logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *MeetingService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewMeetingService creates a new meeting service
func NewMeetingService(meetingRepo repositories.MeetingRepository, opts ...Option) *MeetingService {
	s := &MeetingService{
		meetingRepo: meetingRepo,
		validator:   pkgvalidator.New(),
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// createMeetingRules carries the validation tags for CreateMeetingInput
type createMeetingRules struct {
	Title        string   `validate:"notblank"`
	Date         string   `validate:"required,datetime=2006-01-02"`
	ProcessCount *int     `validate:"omitempty,min=0"`
	SystemCount  *int     `validate:"omitempty,min=0"`
	FindingCount *int     `validate:"omitempty,min=0"`
	Participants []string `validate:"omitempty,dive,notblank"`
	Conclusions  []string `validate:"omitempty,dive,notblank"`
}

func (s *MeetingService) validateCreate(input repositories.CreateMeetingInput) error {
	rules := createMeetingRules{
		Title:        input.Title,
		Date:         input.Date,
		ProcessCount: input.ProcessCount,
		SystemCount:  input.SystemCount,
		FindingCount: input.FindingCount,
		Participants: input.Participants,
		Conclusions:  input.Conclusions,
	}
	err := s.validator.Validate(&rules)
	if err == nil {
		return nil
	}

	appErr := apperrors.ErrInvalidArgument("Invalid meeting")
	appErr.Raw = usecaseErrors.ErrInvalidInput
	for field, tag := range pkgvalidator.FieldErrors(err) {
		appErr = appErr.WithDetail(field, tag)
	}
	return appErr
}

// ListMeetings retrieves all meetings
func (s *MeetingService) ListMeetings(ctx context.Context) ([]*entities.Meeting, error) {
	return s.meetingRepo.ListMeetings(ctx)
}

// GetMeeting retrieves a meeting by ID
func (s *MeetingService) GetMeeting(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	return s.meetingRepo.FindByID(ctx, id)
}

// CreateMeeting creates a meeting with its participants and conclusions
func (s *MeetingService) CreateMeeting(ctx context.Context, input repositories.CreateMeetingInput) (*entities.Meeting, error) {
	if err := s.validateCreate(input); err != nil {
		return nil, err
	}

	meeting, err := s.meetingRepo.CreateMeeting(ctx, input)
	if err != nil {
		// the meeting row may already exist, so derived data is stale either way
		s.invalidate(ctx)
		return nil, err
	}

	s.invalidate(ctx)
	s.logger.Info("meeting.created",
		zap.String("meeting_id", meeting.ID.String()),
		zap.Int("participants", len(input.Participants)),
		zap.Int("conclusions", len(input.Conclusions)),
	)
	return meeting, nil
}

// DeleteMeeting deletes a meeting
func (s *MeetingService) DeleteMeeting(ctx context.Context, id uuid.UUID) error {
	if err := s.meetingRepo.DeleteMeeting(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	s.logger.Info("meeting.deleted", zap.String("meeting_id", id.String()))
	return nil
}

// GetDepartments lists distinct departments
func (s *MeetingService) GetDepartments(ctx context.Context) ([]string, error) {
	var departments []string
	if s.cached(ctx, departmentsCacheKey, &departments) {
		return departments, nil
	}

	gen := s.generation.Load()
	departments, err := s.meetingRepo.GetDepartments(ctx)
	if err != nil {
		return nil, err
	}

	s.store(ctx, gen, departmentsCacheKey, departments)
	return departments, nil
}

// GetStats aggregates meeting counts
func (s *MeetingService) GetStats(ctx context.Context) (*entities.Stats, error) {
	var stats entities.Stats
	if s.cached(ctx, statsCacheKey, &stats) {
		return &stats, nil
	}

	gen := s.generation.Load()
	result, err := s.meetingRepo.GetStats(ctx)
	if err != nil {
		return nil, err
	}

	s.store(ctx, gen, statsCacheKey, result)
	return result, nil
}

// cached decodes key into dst; cache problems are logged and treated as a miss
func (s *MeetingService) cached(ctx context.Context, key string, dst interface{}) bool {
	if s.cache == nil {
		return false
	}

	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("meeting.cache.error",
			zap.String("key", key),
			zap.Error(apperrors.ErrCacheFailed("get", err)),
		)
		return false
	}
	if !ok {
		return false
	}

	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		s.logger.Warn("meeting.cache.decode_error", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// store caches a value read at generation gen. A write that lands while the
// read was in flight makes the value stale, so it is not kept.
func (s *MeetingService) store(ctx context.Context, gen uint64, key string, value interface{}) {
	if s.cache == nil || s.generation.Load() != gen {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("meeting.cache.encode_error", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), s.cacheTTL); err != nil {
		s.logger.Warn("meeting.cache.error",
			zap.String("key", key),
			zap.Error(apperrors.ErrCacheFailed("set", err)),
		)
		return
	}

	// an invalidation between the check above and Set may have missed the key
	if s.generation.Load() != gen {
		s.evict(ctx, key)
	}
}

func (s *MeetingService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	s.generation.Inc()
	s.evict(ctx, departmentsCacheKey, statsCacheKey)
}

func (s *MeetingService) evict(ctx context.Context, keys ...string) {
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.Warn("meeting.cache.error",
			zap.Strings("keys", keys),
			zap.Error(apperrors.ErrCacheFailed("delete", err)),
		)
	}
}
