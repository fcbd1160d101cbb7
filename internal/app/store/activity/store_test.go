package activity

import (
	"testing"
	"time"

	"github.com/dalemusser/tankerhub/internal/testutil"
	"github.com/google/uuid"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newStore(t *testing.T) (*Store, *clock) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	c := &clock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	s := New(db)
	s.now = c.now
	return s, c
}

func TestCreate_AssignsUUIDAndClosesPrevious(t *testing.T) {
	s, c := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	first, err := s.Create(ctx, Session{AdminID: "a1", Email: "a@x.io", Role: "admin", IP: "10.0.0.1"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := uuid.Parse(first.ID); err != nil {
		t.Fatalf("expected uuid id, got %q", first.ID)
	}

	c.t = c.t.Add(5 * time.Minute)
	second, err := s.Create(ctx, Session{AdminID: "a1", Email: "a@x.io", Role: "admin"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if second.ID == first.ID {
		t.Fatal("expected a new id")
	}

	old, err := s.Get(ctx, first.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if old.Open() {
		t.Error("expected previous session to be closed")
	}
	if old.EndReason != EndInactive {
		t.Errorf("expected end reason %q, got %q", EndInactive, old.EndReason)
	}
	if old.DurationSecs != 300 {
		t.Errorf("expected duration 300s, got %d", old.DurationSecs)
	}
}

func TestTouch_Throttled(t *testing.T) {
	s, c := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sess, err := s.Create(ctx, Session{AdminID: "a1", Role: "admin"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	c.t = c.t.Add(30 * time.Second)
	wrote, err := s.Touch(ctx, sess.ID, "/bookings")
	if err != nil {
		t.Fatalf("Touch failed: %v", err)
	}
	if wrote {
		t.Error("expected touch within a minute to be skipped")
	}

	c.t = c.t.Add(45 * time.Second)
	wrote, err = s.Touch(ctx, sess.ID, "/drivers")
	if err != nil {
		t.Fatalf("Touch failed: %v", err)
	}
	if !wrote {
		t.Fatal("expected touch after a minute to write")
	}

	got, _ := s.Get(ctx, sess.ID)
	if got.CurrentPage != "/drivers" {
		t.Errorf("expected current page /drivers, got %q", got.CurrentPage)
	}
	if !got.LastActiveAt.Equal(c.t) {
		t.Errorf("expected last active %v, got %v", c.t, got.LastActiveAt)
	}
}

func TestTouch_EmptyOrClosed(t *testing.T) {
	s, c := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if wrote, err := s.Touch(ctx, "", "/"); err != nil || wrote {
		t.Fatalf("expected no-op for empty id, got %v %v", wrote, err)
	}

	sess, _ := s.Create(ctx, Session{AdminID: "a1"})
	if err := s.Close(ctx, sess.ID, EndLogout); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	c.t = c.t.Add(time.Hour)
	if wrote, err := s.Touch(ctx, sess.ID, "/"); err != nil || wrote {
		t.Fatalf("expected closed session to stay closed, got %v %v", wrote, err)
	}
}

func TestClose_Idempotent(t *testing.T) {
	s, c := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sess, _ := s.Create(ctx, Session{AdminID: "a1"})
	c.t = c.t.Add(10 * time.Minute)
	if err := s.Close(ctx, sess.ID, EndLogout); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	c.t = c.t.Add(10 * time.Minute)
	if err := s.Close(ctx, sess.ID, EndInactive); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
	if err := s.Close(ctx, "missing", EndLogout); err != nil {
		t.Fatalf("Close of unknown session failed: %v", err)
	}

	got, _ := s.Get(ctx, sess.ID)
	if got.EndReason != EndLogout {
		t.Errorf("expected first close to win, got %q", got.EndReason)
	}
	if got.DurationSecs != 600 {
		t.Errorf("expected duration 600s, got %d", got.DurationSecs)
	}
}

func TestCloseInactiveAndOnline(t *testing.T) {
	s, c := newStore(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	idle, _ := s.Create(ctx, Session{AdminID: "idle"})
	c.t = c.t.Add(40 * time.Minute)
	busy, _ := s.Create(ctx, Session{AdminID: "busy"})

	online, err := s.Online(ctx, c.t.Add(-5*time.Minute))
	if err != nil {
		t.Fatalf("Online failed: %v", err)
	}
	if len(online) != 1 || online[0].ID != busy.ID {
		t.Fatalf("expected only the busy session online, got %+v", online)
	}

	n, err := s.CloseInactive(ctx, 30*time.Minute)
	if err != nil {
		t.Fatalf("CloseInactive failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 session closed, got %d", n)
	}

	got, _ := s.Get(ctx, idle.ID)
	if got.Open() {
		t.Error("expected idle session closed")
	}
	if n, _ := s.CloseInactive(ctx, 30*time.Minute); n != 0 {
		t.Errorf("expected nothing left to close, got %d", n)
	}
}
