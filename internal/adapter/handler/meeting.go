package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-records/errors"
	"github.com/johnquangdev/meeting-records/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meeting-records/internal/adapter/presenter"
	meetingUsecase "github.com/johnquangdev/meeting-records/internal/usecase/meeting"
	pkgvalidator "github.com/johnquangdev/meeting-records/pkg/validator"
)

// Meeting handles meeting-related HTTP requests
type Meeting struct {
	meetingService meetingUsecase.Service
	logger         *zap.Logger
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(meetingService meetingUsecase.Service, logger *zap.Logger) *Meeting {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Meeting{
		meetingService: meetingService,
		logger:         logger,
	}
}

// ListMeetings handles GET /meetings
// @Summary      List meetings
// @Description  Lists every meeting with participants and conclusions, newest first
// @Tags         Meetings
// @Produce      json
// @Success      200  {array}   meeting.MeetingResponse
// @Failure      500  {object}  map[string]interface{}
// @Router       /meetings [get]
func (h *Meeting) ListMeetings(c echo.Context) error {
	meetings, err := h.meetingService.ListMeetings(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToMeetingListResponse(meetings))
}

// GetMeeting handles GET /meetings/:id
// @Summary      Get meeting
// @Tags         Meetings
// @Produce      json
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  meeting.MeetingResponse
// @Failure      400  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /meetings/{id} [get]
func (h *Meeting) GetMeeting(c echo.Context) error {
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidMeetingID(c.Param("id")))
	}

	m, err := h.meetingService.GetMeeting(c.Request().Context(), meetingID)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToMeetingResponse(m))
}

// CreateMeeting handles POST /meetings
// @Summary      Create a meeting
// @Description  Creates a meeting, then its participants, then its conclusions
// @Tags         Meetings
// @Accept       json
// @Produce      json
// @Param        request  body      meeting.CreateMeetingRequest  true  "Meeting creation request"
// @Success      201      {object}  meeting.MeetingResponse
// @Failure      400      {object}  map[string]interface{}
// @Failure      500      {object}  map[string]interface{}
// @Router       /meetings [post]
func (h *Meeting) CreateMeeting(c echo.Context) error {
	var req meeting.CreateMeetingRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}

	if err := c.Validate(&req); err != nil {
		appErr := errors.ErrInvalidArgument("Validation failed")
		for field, tag := range pkgvalidator.FieldErrors(err) {
			appErr = appErr.WithDetail(field, tag)
		}
		return HandleError(h.logger, c, appErr)
	}

	m, err := h.meetingService.CreateMeeting(c.Request().Context(), presenter.ToCreateMeetingInput(&req))
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccessWithStatus(h.logger, c, http.StatusCreated, presenter.ToMeetingResponse(m))
}

// DeleteMeeting handles DELETE /meetings/:id
// @Summary      Delete a meeting
// @Tags         Meetings
// @Param        id   path      string  true  "Meeting ID (UUID)"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]interface{}
// @Router       /meetings/{id} [delete]
func (h *Meeting) DeleteMeeting(c echo.Context) error {
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidMeetingID(c.Param("id")))
	}

	if err := h.meetingService.DeleteMeeting(c.Request().Context(), meetingID); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]string{"id": meetingID.String()})
}

// GetDepartments handles GET /meetings/departments
// @Summary      List departments
// @Tags         Meetings
// @Produce      json
// @Success      200  {array}   string
// @Router       /meetings/departments [get]
func (h *Meeting) GetDepartments(c echo.Context) error {
	departments, err := h.meetingService.GetDepartments(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if departments == nil {
		departments = []string{}
	}
	return HandleSuccess(h.logger, c, departments)
}

// GetStats handles GET /meetings/stats
// @Summary      Meeting statistics
// @Tags         Meetings
// @Produce      json
// @Success      200  {object}  meeting.StatsResponse
// @Router       /meetings/stats [get]
func (h *Meeting) GetStats(c echo.Context) error {
	stats, err := h.meetingService.GetStats(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToStatsResponse(stats))
}
