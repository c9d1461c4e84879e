package store

import (
	"context"
	"time"

	"github.com/charmbracelet/punch/pkg/db"
	"github.com/charmbracelet/punch/pkg/db/models"
)

// RequestFilter narrows a request listing. Zero values don't filter.
type RequestFilter struct {
	UserID int64
	TeamID int64
	// TeamIDs limits results to any of the given teams.
	TeamIDs []int64
	Status  models.RequestStatus
	Limit   int
}

// RequestStore is an interface for managing correction requests.
type RequestStore interface {
	CreateRequest(ctx context.Context, h db.Handler, userID int64, teamID int64, typ models.RequestType, description string, payload string) (models.CorrectionRequest, error)
	GetRequestByID(ctx context.Context, h db.Handler, id int64) (models.CorrectionRequest, error)
	ListRequests(ctx context.Context, h db.Handler, filter RequestFilter) ([]models.CorrectionRequest, error)
	// ReviewRequest moves a pending request to a terminal status. It
	// reports false when the request was no longer pending.
	ReviewRequest(ctx context.Context, h db.Handler, id int64, status models.RequestStatus, reviewerID int64, notes string, reviewedAt time.Time) (bool, error)
	CountPendingRequests(ctx context.Context, h db.Handler) (int64, error)
}

// CommentStore is an interface for managing request comments.
type CommentStore interface {
	CreateComment(ctx context.Context, h db.Handler, requestID int64, authorID int64, content string) (models.Comment, error)
	ListCommentsByRequest(ctx context.Context, h db.Handler, requestID int64) ([]models.Comment, error)
}
