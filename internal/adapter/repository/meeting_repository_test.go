package repository

import (
	"context"
	stdErrors "errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	apperrors "github.com/johnquangdev/meeting-records/errors"
	"github.com/johnquangdev/meeting-records/internal/domain/entities"
	"github.com/johnquangdev/meeting-records/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/meeting-records/internal/usecase/errors"
)

var errStoreDown = stdErrors.New("store unavailable")

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// one connection so every query sees the same in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&entities.Meeting{}, &entities.Participant{}, &entities.Conclusion{}))
	return db
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

// recordInserts tracks the table of every insert and fails the ones for failTable
func recordInserts(t *testing.T, db *gorm.DB, failTable string) *[]string {
	t.Helper()
	var tables []string
	err := db.Callback().Create().Before("gorm:create").Register("test:record_inserts", func(tx *gorm.DB) {
		tables = append(tables, tx.Statement.Table)
		if tx.Statement.Table == failTable {
			_ = tx.AddError(errStoreDown)
		}
	})
	require.NoError(t, err)
	return &tables
}

func TestListMeetings_EmptyStore(t *testing.T) {
	repo := NewMeetingRepository(newTestDB(t), nil)

	meetings, err := repo.ListMeetings(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, meetings)
	assert.Empty(t, meetings)
}

func TestListMeetings_WithRelationsNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewMeetingRepository(db, nil)
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	older := &entities.Meeting{Title: "Kickoff", Date: "2024-03-01", CreatedAt: base}
	newer := &entities.Meeting{Title: "Review", Date: "2024-03-08", CreatedAt: base.Add(7 * 24 * time.Hour)}
	require.NoError(t, db.Create(older).Error)
	require.NoError(t, db.Create(newer).Error)

	participants := []*entities.Participant{
		{MeetingID: newer.ID, Name: "Ana"},
		{MeetingID: newer.ID, Name: "Luis"},
		{MeetingID: newer.ID, Name: "Marta"},
	}
	require.NoError(t, db.Create(&participants).Error)
	// inserted out of order on purpose
	conclusions := []*entities.Conclusion{
		{MeetingID: newer.ID, Conclusion: "second", OrderIndex: 1},
		{MeetingID: newer.ID, Conclusion: "first", OrderIndex: 0},
	}
	require.NoError(t, db.Create(&conclusions).Error)

	meetings, err := repo.ListMeetings(ctx)
	require.NoError(t, err)
	require.Len(t, meetings, 2)

	assert.Equal(t, newer.ID, meetings[0].ID)
	assert.Equal(t, older.ID, meetings[1].ID)

	assert.ElementsMatch(t, []string{"Ana", "Luis", "Marta"}, meetings[0].ParticipantNames())
	require.Len(t, meetings[0].Conclusions, 2)
	assert.Equal(t, "first", meetings[0].Conclusions[0].Conclusion)
	assert.Equal(t, 0, meetings[0].Conclusions[0].OrderIndex)
	assert.Equal(t, "second", meetings[0].Conclusions[1].Conclusion)
	assert.Equal(t, 1, meetings[0].Conclusions[1].OrderIndex)

	assert.Empty(t, meetings[1].Participants)
	assert.Empty(t, meetings[1].Conclusions)
}

func TestCreateMeeting_WithParticipantsAndConclusions(t *testing.T) {
	db := newTestDB(t)
	repo := NewMeetingRepository(db, nil)

	meeting, err := repo.CreateMeeting(context.Background(), repositories.CreateMeetingInput{
		Title:        "T",
		Date:         "2024-01-01",
		Participants: []string{"A", "B"},
		Conclusions:  []string{"C1", "C2"},
	})
	require.NoError(t, err)
	require.NotNil(t, meeting)
	assert.NotEqual(t, uuid.Nil, meeting.ID)
	assert.False(t, meeting.CreatedAt.IsZero())

	var meetingCount int64
	require.NoError(t, db.Model(&entities.Meeting{}).Count(&meetingCount).Error)
	assert.EqualValues(t, 1, meetingCount)

	var participants []entities.Participant
	require.NoError(t, db.Order("name").Find(&participants).Error)
	require.Len(t, participants, 2)
	assert.Equal(t, "A", participants[0].Name)
	assert.Equal(t, "B", participants[1].Name)
	for _, p := range participants {
		assert.Equal(t, meeting.ID, p.MeetingID)
	}

	var conclusions []entities.Conclusion
	require.NoError(t, db.Order("order_index").Find(&conclusions).Error)
	require.Len(t, conclusions, 2)
	assert.Equal(t, "C1", conclusions[0].Conclusion)
	assert.Equal(t, 0, conclusions[0].OrderIndex)
	assert.Equal(t, "C2", conclusions[1].Conclusion)
	assert.Equal(t, 1, conclusions[1].OrderIndex)
	for _, c := range conclusions {
		assert.Equal(t, meeting.ID, c.MeetingID)
	}
}

func TestCreateMeeting_MeetingOnlyDefaultsCounts(t *testing.T) {
	db := newTestDB(t)
	repo := NewMeetingRepository(db, nil)
	inserts := recordInserts(t, db, "")

	meeting, err := repo.CreateMeeting(context.Background(), repositories.CreateMeetingInput{
		Title:      "Weekly sync",
		Date:       "2024-02-02",
		Department: strPtr("HR"),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"meetings"}, *inserts)

	var stored entities.Meeting
	require.NoError(t, db.First(&stored, "id = ?", meeting.ID).Error)
	require.NotNil(t, stored.ProcessCount)
	require.NotNil(t, stored.SystemCount)
	require.NotNil(t, stored.FindingCount)
	assert.Equal(t, 0, *stored.ProcessCount)
	assert.Equal(t, 0, *stored.SystemCount)
	assert.Equal(t, 0, *stored.FindingCount)
	assert.Equal(t, "HR", *stored.Department)
}

func TestCreateMeeting_ParticipantFailureSkipsConclusions(t *testing.T) {
	db := newTestDB(t)
	core, logs := observer.New(zap.ErrorLevel)
	repo := NewMeetingRepository(db, zap.New(core))
	inserts := recordInserts(t, db, "participants")

	meeting, err := repo.CreateMeeting(context.Background(), repositories.CreateMeetingInput{
		Title:        "T",
		Date:         "2024-01-01",
		Participants: []string{"A"},
		Conclusions:  []string{"C1"},
	})
	require.Error(t, err)
	assert.Nil(t, meeting)
	assert.ErrorIs(t, err, errStoreDown)
	assert.True(t, apperrors.IsStoreError(err))

	assert.Equal(t, []string{"meetings", "participants"}, *inserts)

	// no compensating rollback of the meeting row
	var meetingCount, conclusionCount int64
	require.NoError(t, db.Model(&entities.Meeting{}).Count(&meetingCount).Error)
	require.NoError(t, db.Model(&entities.Conclusion{}).Count(&conclusionCount).Error)
	assert.EqualValues(t, 1, meetingCount)
	assert.EqualValues(t, 0, conclusionCount)

	entries := logs.FilterMessage("meeting.repository.error").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "create_participants", entries[0].ContextMap()["operation"])
}

func TestCreateMeeting_MeetingFailureStopsEarly(t *testing.T) {
	db := newTestDB(t)
	repo := NewMeetingRepository(db, nil)
	inserts := recordInserts(t, db, "meetings")

	_, err := repo.CreateMeeting(context.Background(), repositories.CreateMeetingInput{
		Title:        "T",
		Date:         "2024-01-01",
		Participants: []string{"A"},
	})
	assert.ErrorIs(t, err, errStoreDown)
	assert.Equal(t, []string{"meetings"}, *inserts)
}

func TestDeleteMeeting(t *testing.T) {
	db := newTestDB(t)
	repo := NewMeetingRepository(db, nil)
	ctx := context.Background()

	meeting, err := repo.CreateMeeting(ctx, repositories.CreateMeetingInput{Title: "T", Date: "2024-01-01"})
	require.NoError(t, err)

	require.NoError(t, repo.DeleteMeeting(ctx, meeting.ID))

	var count int64
	require.NoError(t, db.Model(&entities.Meeting{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	// deleting again is a no-op
	assert.NoError(t, repo.DeleteMeeting(ctx, meeting.ID))
}

func TestFindByID(t *testing.T) {
	db := newTestDB(t)
	repo := NewMeetingRepository(db, nil)
	ctx := context.Background()

	created, err := repo.CreateMeeting(ctx, repositories.CreateMeetingInput{
		Title:        "T",
		Date:         "2024-01-01",
		Participants: []string{"A"},
		Conclusions:  []string{"C1", "C2"},
	})
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "T", found.Title)
	assert.Equal(t, []string{"A"}, found.ParticipantNames())
	assert.Len(t, found.Conclusions, 2)

	_, err = repo.FindByID(ctx, uuid.New())
	var appErr apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorCode_NOT_FOUND, appErr.Code)
	assert.ErrorIs(t, err, usecaseErrors.ErrNotFound)
	assert.False(t, apperrors.IsStoreError(err))
}

func TestGetDepartments_DistinctNonEmpty(t *testing.T) {
	db := newTestDB(t)
	repo := NewMeetingRepository(db, nil)

	for _, dept := range []*string{strPtr(" Sales"), nil, strPtr("Sales"), strPtr("HR"), strPtr("")} {
		require.NoError(t, db.Create(&entities.Meeting{Title: "m", Date: "2024-01-01", Department: dept}).Error)
	}

	departments, err := repo.GetDepartments(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Sales", "HR"}, departments)
}

func TestGetDepartments_AscendingOrder(t *testing.T) {
	db := newTestDB(t)
	repo := NewMeetingRepository(db, nil)

	for _, dept := range []string{"Sales", "Finance", "HR", "Finance"} {
		require.NoError(t, db.Create(&entities.Meeting{Title: "m", Date: "2024-01-01", Department: strPtr(dept)}).Error)
	}

	departments, err := repo.GetDepartments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Finance", "HR", "Sales"}, departments)
}

func TestGetDepartments_EmptyStore(t *testing.T) {
	repo := NewMeetingRepository(newTestDB(t), nil)

	departments, err := repo.GetDepartments(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, departments)
	assert.Empty(t, departments)
}

func TestGetStats_NullCountsAsZero(t *testing.T) {
	db := newTestDB(t)
	repo := NewMeetingRepository(db, nil)

	rows := []*entities.Meeting{
		{Title: "a", Date: "2024-01-01", ProcessCount: intPtr(2), SystemCount: intPtr(1)},
		{Title: "b", Date: "2024-01-02"},
		{Title: "c", Date: "2024-01-03", ProcessCount: intPtr(3), FindingCount: intPtr(4)},
	}
	require.NoError(t, db.Create(&rows).Error)

	stats, err := repo.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &entities.Stats{
		TotalMeetings:  3,
		TotalProcesses: 5,
		TotalSystems:   1,
		TotalFindings:  4,
	}, stats)
}

func TestListMeetings_StoreError(t *testing.T) {
	db, mock := newMockDB(t)
	core, logs := observer.New(zap.ErrorLevel)
	repo := NewMeetingRepository(db, zap.New(core))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "meetings"`)).WillReturnError(errStoreDown)

	meetings, err := repo.ListMeetings(context.Background())
	assert.Nil(t, meetings)
	assert.ErrorIs(t, err, errStoreDown)
	assert.True(t, apperrors.IsStoreError(err))
	assert.Equal(t, 1, logs.FilterMessage("meeting.repository.error").Len())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMeeting_StoreError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMeetingRepository(db, nil)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "meetings" WHERE id = $1`)).
		WithArgs(id).
		WillReturnError(errStoreDown)

	err := repo.DeleteMeeting(context.Background(), id)
	assert.ErrorIs(t, err, errStoreDown)

	var appErr apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "delete_meeting", appErr.Details["query"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDepartments_StoreError(t *testing.T) {
	db, mock := newMockDB(t)
	core, logs := observer.New(zap.ErrorLevel)
	repo := NewMeetingRepository(db, zap.New(core))

	mock.ExpectQuery(`SELECT .*department.* FROM "meetings"`).WillReturnError(errStoreDown)

	departments, err := repo.GetDepartments(context.Background())
	assert.Nil(t, departments)
	assert.ErrorIs(t, err, errStoreDown)
	assert.True(t, apperrors.IsStoreError(err))

	entries := logs.FilterMessage("meeting.repository.error").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "get_departments", entries[0].ContextMap()["operation"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetStats_StoreError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMeetingRepository(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT process_count, system_count, finding_count FROM "meetings"`)).
		WillReturnError(errStoreDown)

	stats, err := repo.GetStats(context.Background())
	assert.Nil(t, stats)
	assert.ErrorIs(t, err, errStoreDown)
	assert.NoError(t, mock.ExpectationsWereMet())
}
