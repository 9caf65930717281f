package presenter

import (
	"github.com/johnquangdev/meeting-records/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meeting-records/internal/domain/entities"
	"github.com/johnquangdev/meeting-records/internal/domain/repositories"
)

// ToMeetingResponse converts a Meeting entity to MeetingResponse DTO
func ToMeetingResponse(m *entities.Meeting) *meeting.MeetingResponse {
	if m == nil {
		return nil
	}

	response := &meeting.MeetingResponse{
		ID:           m.ID.String(),
		Title:        m.Title,
		Date:         m.Date,
		Department:   m.Department,
		Objective:    m.Objective,
		RawContent:   m.RawContent,
		ProcessCount: entities.CountOrZero(m.ProcessCount),
		SystemCount:  entities.CountOrZero(m.SystemCount),
		FindingCount: entities.CountOrZero(m.FindingCount),
		CreatedAt:    m.CreatedAt,
		Participants: make([]meeting.ParticipantResponse, 0, len(m.Participants)),
		Conclusions:  make([]meeting.ConclusionResponse, 0, len(m.Conclusions)),
	}

	for _, p := range m.Participants {
		response.Participants = append(response.Participants, meeting.ParticipantResponse{Name: p.Name})
	}
	for _, c := range m.Conclusions {
		response.Conclusions = append(response.Conclusions, meeting.ConclusionResponse{
			Conclusion: c.Conclusion,
			OrderIndex: c.OrderIndex,
		})
	}

	return response
}

// ToMeetingListResponse converts meetings to DTOs; never returns nil
func ToMeetingListResponse(meetings []*entities.Meeting) []*meeting.MeetingResponse {
	out := make([]*meeting.MeetingResponse, 0, len(meetings))
	for _, m := range meetings {
		out = append(out, ToMeetingResponse(m))
	}
	return out
}

// ToStatsResponse converts aggregate stats to their DTO
func ToStatsResponse(s *entities.Stats) *meeting.StatsResponse {
	if s == nil {
		return &meeting.StatsResponse{}
	}
	return &meeting.StatsResponse{
		TotalMeetings:  s.TotalMeetings,
		TotalProcesses: s.TotalProcesses,
		TotalSystems:   s.TotalSystems,
		TotalFindings:  s.TotalFindings,
	}
}

// ToCreateMeetingInput maps the request DTO onto the repository input
func ToCreateMeetingInput(req *meeting.CreateMeetingRequest) repositories.CreateMeetingInput {
	return repositories.CreateMeetingInput{
		Title:        req.Title,
		Date:         req.Date,
		Department:   req.Department,
		Objective:    req.Objective,
		RawContent:   req.RawContent,
		ProcessCount: req.ProcessCount,
		SystemCount:  req.SystemCount,
		FindingCount: req.FindingCount,
		Participants: req.Participants,
		Conclusions:  req.Conclusions,
	}
}
