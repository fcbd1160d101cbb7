package auditlog

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	uierrors "github.com/dalemusser/tankerhub/internal/app/features/errors"
	"github.com/dalemusser/tankerhub/internal/app/store/audit"
	"github.com/dalemusser/tankerhub/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeEvents struct {
	total    int64
	events   []audit.Event
	err      error
	filters  []audit.QueryFilter
	countErr error
}

func (f *fakeEvents) Query(_ context.Context, filter audit.QueryFilter) ([]audit.Event, error) {
	f.filters = append(f.filters, filter)
	return f.events, f.err
}

func (f *fakeEvents) CountByFilter(_ context.Context, filter audit.QueryFilter) (int64, error) {
	return f.total, f.countErr
}

func newTestHandler(ev *fakeEvents) *Handler {
	logger := zap.NewNop()
	return NewHandler(ev, uierrors.NewErrorLogger(logger, nil, nil), logger)
}

func serve(t *testing.T, h *Handler, target string) *testutil.ResponseRecorder {
	t.Helper()
	req := testutil.NewAuthenticatedRequest(http.MethodGet, target, testutil.SuperAdminUser())
	rec := testutil.NewRecorder()
	testutil.Render(t, func() { h.ServeList(rec, req) })
	return rec
}

func TestServeList_Filters(t *testing.T) {
	ev := &fakeEvents{total: 3}
	serve(t, newTestHandler(ev), "/audit?category=auth&event_type=logout&actor=Ali@Example.com&start_date=2026-03-01&end_date=2026-03-02")

	require.Len(t, ev.filters, 1)
	f := ev.filters[0]
	assert.Equal(t, audit.CategoryAuth, f.Category)
	assert.Equal(t, audit.EventLogout, f.EventType)
	assert.Equal(t, "ali@example.com", f.ActorEmail)
	require.NotNil(t, f.StartTime)
	require.NotNil(t, f.EndTime)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local), *f.StartTime)
	assert.True(t, f.EndTime.After(time.Date(2026, 3, 2, 23, 59, 59, 0, time.Local)))
	assert.True(t, f.EndTime.Before(time.Date(2026, 3, 3, 0, 0, 0, 0, time.Local)))
	assert.EqualValues(t, pageSize, f.Limit)
	assert.EqualValues(t, 0, f.Offset)
}

func TestServeList_DropsUnknownFilters(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"unknown category", "/audit?category=billing"},
		{"event outside category", "/audit?category=auth&event_type=entity_created"},
		{"bad dates", "/audit?start_date=yesterday&end_date=2026-13-40"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ev := &fakeEvents{}
			serve(t, newTestHandler(ev), tc.target)

			require.Len(t, ev.filters, 1)
			f := ev.filters[0]
			assert.Empty(t, f.EventType)
			if tc.name == "unknown category" {
				assert.Empty(t, f.Category)
			}
			assert.Nil(t, f.StartTime)
			assert.Nil(t, f.EndTime)
		})
	}
}

func TestServeList_PageOffset(t *testing.T) {
	ev := &fakeEvents{total: 120}
	serve(t, newTestHandler(ev), "/audit?page=3")

	require.Len(t, ev.filters, 1)
	assert.EqualValues(t, 100, ev.filters[0].Offset)

	// Past the last page clamps to it.
	ev = &fakeEvents{total: 120}
	serve(t, newTestHandler(ev), "/audit?page=9")
	require.Len(t, ev.filters, 1)
	assert.EqualValues(t, 100, ev.filters[0].Offset)
}

func TestServeList_StoreError(t *testing.T) {
	ev := &fakeEvents{countErr: errors.New("mongo down")}
	rec := serve(t, newTestHandler(ev), "/audit")

	assert.Empty(t, ev.filters, "query must not run after a failed count")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestEventTypesForCategory(t *testing.T) {
	assert.Equal(t, authEvents, eventTypesForCategory(audit.CategoryAuth))
	assert.Equal(t, adminEvents, eventTypesForCategory(audit.CategoryAdmin))
	assert.Len(t, eventTypesForCategory(""), len(authEvents)+len(adminEvents))
}

func TestPageQuery(t *testing.T) {
	d := listData{Category: "auth", ActorEmail: "a@b.co"}
	assert.Equal(t, "actor=a%40b.co&category=auth", d.pageQuery(1))
	assert.Equal(t, "actor=a%40b.co&category=auth&page=2", d.pageQuery(2))
}
