package backend

import (
	"context"
	"time"

	"github.com/charmbracelet/punch/pkg/access"
	"github.com/charmbracelet/punch/pkg/proto"
	"github.com/charmbracelet/punch/pkg/schema"
	"github.com/charmbracelet/punch/pkg/store"
	"github.com/charmbracelet/punch/pkg/worktime"
)

// SummaryFilter selects the time reported by TimeSummary.
type SummaryFilter struct {
	// UserID defaults to the caller.
	UserID int64
	// TeamID limits the report to one team. It is required to report on
	// another user, unless the caller is a superadmin.
	TeamID int64
	// From and To bound the report to [From, To), as YYYY-MM-DD. They
	// default to the last seven days.
	From string
	To   string
}

// TimeSummary reports worked time per day: session time minus breaks, with
// adjustments applied.
func (d *Backend) TimeSummary(ctx context.Context, caller proto.User, filter SummaryFilter) (worktime.Summary, error) {
	if caller == nil {
		return worktime.Summary{}, proto.ErrUnauthenticated
	}

	userID := filter.UserID
	if userID == 0 {
		userID = caller.ID()
	}

	if userID != caller.ID() && !d.IsSuperadmin(caller) {
		if filter.TeamID == 0 {
			return worktime.Summary{}, proto.ErrForbidden
		}
		if _, err := d.requireRole(ctx, d.db, caller, filter.TeamID, access.ManagerRole); err != nil {
			return worktime.Summary{}, err
		}
	}

	from, to, err := d.summaryRange(filter.From, filter.To)
	if err != nil {
		return worktime.Summary{}, err
	}

	sessions, err := d.store.ListSessions(ctx, d.db, store.SessionFilter{
		UserID: userID,
		TeamID: filter.TeamID,
		From:   from,
		To:     to,
	})
	if err != nil {
		return worktime.Summary{}, err
	}

	ids := make([]int64, 0, len(sessions))
	for _, s := range sessions {
		ids = append(ids, s.ID)
	}

	breaks, err := d.store.ListBreaksBySessions(ctx, d.db, ids)
	if err != nil {
		return worktime.Summary{}, err
	}

	adjustments, err := d.store.ListAdjustments(ctx, d.db, store.AdjustmentFilter{
		UserID: userID,
		TeamID: filter.TeamID,
		From:   from.Format(worktime.DateLayout),
		To:     to.Format(worktime.DateLayout),
	})
	if err != nil {
		return worktime.Summary{}, err
	}

	return worktime.Summarize(sessions, breaks, adjustments, d.now()), nil
}

func (d *Backend) summaryRange(fromStr, toStr string) (time.Time, time.Time, error) {
	today := d.now().Truncate(24 * time.Hour)
	from, to := today.AddDate(0, 0, -6), today.AddDate(0, 0, 1)

	if fromStr != "" {
		date, ok := worktime.NormalizeDate(fromStr)
		if !ok {
			return from, to, schema.Invalid("from", "date", "from must be a YYYY-MM-DD date")
		}
		from, _ = time.Parse(worktime.DateLayout, date)
	}
	if toStr != "" {
		date, ok := worktime.NormalizeDate(toStr)
		if !ok {
			return from, to, schema.Invalid("to", "date", "to must be a YYYY-MM-DD date")
		}
		to, _ = time.Parse(worktime.DateLayout, date)
	}
	if !to.After(from) {
		return from, to, schema.Invalid("to", "gt", "to must be after from")
	}

	return from, to, nil
}
