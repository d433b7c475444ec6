// internal/app/features/auditlog/list.go
package auditlog

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/tasktracker/internal/app/store/audit"
	"github.com/dalemusser/tasktracker/internal/app/system/apierr"
	"github.com/dalemusser/tasktracker/internal/app/system/inputval"
	"github.com/dalemusser/tasktracker/internal/app/system/jsonio"
	"github.com/dalemusser/tasktracker/internal/app/system/paging"
	"github.com/dalemusser/tasktracker/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// parseFilter reads ?category, ?event_type, ?user, ?task, ?from and ?to.
// A bare date in ?to covers the whole day.
func parseFilter(r *http.Request) (audit.QueryFilter, error) {
	var f audit.QueryFilter

	if c := query.Get(r, "category"); c != "" {
		if !categories[c] {
			return f, apierr.New(apierr.InvalidArgument, "Invalid category filter")
		}
		f.Category = c
	}
	f.EventType = query.Get(r, "event_type")

	for key, dst := range map[string]**primitive.ObjectID{"user": &f.UserID, "task": &f.TaskID} {
		raw := query.Get(r, key)
		if raw == "" {
			continue
		}
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return f, apierr.New(apierr.InvalidArgument, "Invalid "+key+" ID")
		}
		*dst = &id
	}

	if s := query.Get(r, "from"); s != "" {
		t, err := inputval.ParseDate(s)
		if err != nil {
			return f, apierr.New(apierr.InvalidArgument, "Invalid from date")
		}
		f.StartTime = &t
	}
	if s := query.Get(r, "to"); s != "" {
		t, err := inputval.ParseDate(s)
		if err != nil {
			return f, apierr.New(apierr.InvalidArgument, "Invalid to date")
		}
		if len(s) == len("2006-01-02") {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		f.EndTime = &t
	}
	return f, nil
}

// ServeList handles GET /audit: recent events, newest first, with the
// total in X-Total-Count.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}
	pg := paging.Parse(r)
	filter.Limit = int64(pg.Limit)
	filter.Offset = pg.Skip()

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	events, err := h.Events.Query(ctx, filter)
	if err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}
	total, err := h.Events.CountByFilter(ctx, filter)
	if err != nil {
		apierr.Write(w, r, h.Log, err)
		return
	}

	// Collect unique user IDs for name resolution
	seen := make(map[primitive.ObjectID]struct{})
	var ids []primitive.ObjectID
	for _, e := range events {
		for _, id := range []*primitive.ObjectID{e.ActorID, e.UserID} {
			if id == nil {
				continue
			}
			if _, ok := seen[*id]; !ok {
				seen[*id] = struct{}{}
				ids = append(ids, *id)
			}
		}
	}
	names, err := h.Users.NamesByIDs(ctx, ids)
	if err != nil {
		// names are cosmetic; ids are still returned
		h.Log.Warn("failed to fetch user names for audit log", zap.Error(err))
	}

	items := make([]eventItem, 0, len(events))
	for _, e := range events {
		item := eventItem{
			ID:            e.ID,
			Timestamp:     e.Timestamp,
			Category:      e.Category,
			EventType:     e.EventType,
			ActorID:       e.ActorID,
			UserID:        e.UserID,
			TaskID:        e.TaskID,
			IP:            e.IP,
			Success:       e.Success,
			FailureReason: e.FailureReason,
			Details:       e.Details,
		}
		if e.ActorID != nil {
			item.ActorName = names[*e.ActorID]
		}
		if e.UserID != nil {
			item.UserName = names[*e.UserID]
		}
		items = append(items, item)
	}

	pg.SetHeaders(w, total)
	jsonio.Write(w, http.StatusOK, items)
}
