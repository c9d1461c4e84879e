package web

import (
	"encoding/json"
	"time"

	"github.com/charmbracelet/punch/pkg/db/models"
	"github.com/charmbracelet/punch/pkg/proto"
)

type userResponse struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Admin       bool      `json:"admin"`
	CreatedAt   time.Time `json:"created_at"`
}

func newUserResponse(u proto.User) userResponse {
	return userResponse{
		ID:          u.ID(),
		Email:       u.Email(),
		DisplayName: u.DisplayName(),
		Admin:       u.IsAdmin(),
		CreatedAt:   u.CreatedAt(),
	}
}

type meResponse struct {
	userResponse
	Superadmin bool `json:"superadmin"`
}

type teamResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	CreatedBy int64  `json:"created_by"`
}

func newTeamResponse(t proto.Team) teamResponse {
	return teamResponse{
		ID:        t.ID(),
		Name:      t.Name(),
		Color:     t.Color(),
		CreatedBy: t.CreatedBy(),
	}
}

type sessionResponse struct {
	ID       int64      `json:"id"`
	UserID   int64      `json:"user_id"`
	TeamID   int64      `json:"team_id"`
	ClockIn  time.Time  `json:"clock_in"`
	ClockOut *time.Time `json:"clock_out"`
	Open     bool       `json:"open"`
}

func newSessionResponse(s models.TimeSession) sessionResponse {
	return sessionResponse{
		ID:       s.ID,
		UserID:   s.UserID,
		TeamID:   s.TeamID,
		ClockIn:  s.ClockIn.UTC(),
		ClockOut: nullTime(s.ClockOut.Time, s.ClockOut.Valid),
		Open:     s.IsOpen(),
	}
}

type breakResponse struct {
	ID         int64            `json:"id"`
	SessionID  int64            `json:"session_id"`
	BreakType  models.BreakType `json:"break_type"`
	BreakStart time.Time        `json:"break_start"`
	BreakEnd   *time.Time       `json:"break_end"`
}

func newBreakResponse(b models.BreakSegment) breakResponse {
	return breakResponse{
		ID:         b.ID,
		SessionID:  b.SessionID,
		BreakType:  b.BreakType,
		BreakStart: b.BreakStart.UTC(),
		BreakEnd:   nullTime(b.BreakEnd.Time, b.BreakEnd.Valid),
	}
}

type requestResponse struct {
	ID          int64                `json:"id"`
	UserID      int64                `json:"user_id"`
	TeamID      int64                `json:"team_id"`
	Type        models.RequestType   `json:"type"`
	Description string               `json:"description"`
	Payload     json.RawMessage      `json:"payload"`
	Status      models.RequestStatus `json:"status"`
	ReviewerID  *int64               `json:"reviewer_id"`
	ReviewNotes *string              `json:"review_notes"`
	ReviewedAt  *time.Time           `json:"reviewed_at"`
	CreatedAt   time.Time            `json:"created_at"`
}

func newRequestResponse(r models.CorrectionRequest) requestResponse {
	res := requestResponse{
		ID:          r.ID,
		UserID:      r.UserID,
		TeamID:      r.TeamID,
		Type:        r.Type,
		Description: r.Description,
		Payload:     json.RawMessage(r.Payload),
		Status:      r.Status,
		ReviewedAt:  nullTime(r.ReviewedAt.Time, r.ReviewedAt.Valid),
		CreatedAt:   r.CreatedAt.UTC(),
	}
	if !json.Valid(res.Payload) {
		res.Payload = json.RawMessage("{}")
	}
	if r.ReviewerID.Valid {
		res.ReviewerID = &r.ReviewerID.Int64
	}
	if r.ReviewNotes.Valid {
		res.ReviewNotes = &r.ReviewNotes.String
	}
	return res
}

type commentResponse struct {
	ID        int64     `json:"id"`
	RequestID int64     `json:"request_id"`
	AuthorID  int64     `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func newCommentResponse(c models.Comment) commentResponse {
	return commentResponse{
		ID:        c.ID,
		RequestID: c.RequestID,
		AuthorID:  c.AuthorID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt.UTC(),
	}
}

type adjustmentResponse struct {
	ID            int64                 `json:"id"`
	RequestID     *int64                `json:"request_id"`
	UserID        int64                 `json:"user_id"`
	TeamID        int64                 `json:"team_id"`
	CreatedBy     int64                 `json:"created_by"`
	Type          models.AdjustmentType `json:"type"`
	Minutes       int                   `json:"minutes"`
	EffectiveDate string                `json:"effective_date"`
	Description   string                `json:"description"`
	CreatedAt     time.Time             `json:"created_at"`
}

func newAdjustmentResponse(a models.Adjustment) adjustmentResponse {
	res := adjustmentResponse{
		ID:            a.ID,
		UserID:        a.UserID,
		TeamID:        a.TeamID,
		CreatedBy:     a.CreatedBy,
		Type:          a.Type,
		Minutes:       a.Minutes,
		EffectiveDate: a.EffectiveDate,
		Description:   a.Description,
		CreatedAt:     a.CreatedAt.UTC(),
	}
	if a.RequestID.Valid {
		res.RequestID = &a.RequestID.Int64
	}
	return res
}

type reviewResponse struct {
	Request    requestResponse     `json:"request"`
	Adjustment *adjustmentResponse `json:"adjustment"`
}

func nullTime(t time.Time, valid bool) *time.Time {
	if !valid {
		return nil
	}
	t = t.UTC()
	return &t
}

func mapSlice[T, R any](in []T, fn func(T) R) []R {
	out := make([]R, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}
