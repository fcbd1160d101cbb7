// internal/app/store/activity/store.go
package activity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// End reasons
const (
	EndLogout   = "logout"
	EndInactive = "inactive"
	EndRejected = "rejected" // backend refused the token
)

// TouchInterval is the minimum gap between two last_active_at writes for
// the same session.
const TouchInterval = time.Minute

// Session tracks one signed-in dashboard admin, from login to logout or
// inactivity.
type Session struct {
	ID      string `bson:"_id"`
	AdminID string `bson:"admin_id"`
	Email   string `bson:"email"`
	Name    string `bson:"name,omitempty"`
	Role    string `bson:"role"`

	// Timing
	LoginAt      time.Time  `bson:"login_at"`
	LogoutAt     *time.Time `bson:"logout_at,omitempty"`
	LastActiveAt time.Time  `bson:"last_active_at"`

	CurrentPage string `bson:"current_page,omitempty"`
	EndReason   string `bson:"end_reason,omitempty"`

	// Context
	IP        string `bson:"ip"`
	UserAgent string `bson:"user_agent,omitempty"`

	DurationSecs int64 `bson:"duration_secs,omitempty"`
}

// Open reports whether the session has not been closed.
func (s Session) Open() bool { return s.LogoutAt == nil }

// Store manages admin activity sessions.
type Store struct {
	c   *mongo.Collection
	now func() time.Time
}

// New creates a new activity Store.
func New(db *mongo.Database) *Store {
	return &Store{
		c:   db.Collection("activity_sessions"),
		now: func() time.Time { return time.Now().UTC() },
	}
}

// EnsureIndexes creates necessary indexes for efficient querying.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		// Who's online
		{
			Keys:    bson.D{{Key: "logout_at", Value: 1}, {Key: "last_active_at", Value: -1}},
			Options: options.Index().SetName("idx_activity_open"),
		},
		// Admin session history
		{
			Keys:    bson.D{{Key: "admin_id", Value: 1}, {Key: "login_at", Value: -1}},
			Options: options.Index().SetName("idx_activity_admin"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Create starts a session. Open sessions of the same admin are closed
// as inactive first.
func (s *Store) Create(ctx context.Context, sess Session) (Session, error) {
	now := s.now()

	if sess.AdminID != "" {
		if _, err := s.closeWhere(ctx, bson.M{"admin_id": sess.AdminID, "logout_at": nil}, EndInactive, now); err != nil {
			return Session{}, err
		}
	}

	sess.ID = uuid.NewString()
	sess.LoginAt = now
	sess.LastActiveAt = now
	sess.LogoutAt = nil
	sess.EndReason = ""
	sess.DurationSecs = 0

	if _, err := s.c.InsertOne(ctx, sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Touch records activity on an open session. Writes are skipped when the
// session was already touched within TouchInterval; the returned bool
// reports whether a write happened.
func (s *Store) Touch(ctx context.Context, id, page string) (bool, error) {
	if id == "" {
		return false, nil
	}
	now := s.now()
	set := bson.M{"last_active_at": now}
	if page != "" {
		set["current_page"] = page
	}

	res, err := s.c.UpdateOne(ctx,
		bson.M{
			"_id":            id,
			"logout_at":      nil,
			"last_active_at": bson.M{"$lt": now.Add(-TouchInterval)},
		},
		bson.M{"$set": set},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// Close ends a session with the given reason and records its duration.
// Closing an unknown or already closed session is not an error.
func (s *Store) Close(ctx context.Context, id, reason string) error {
	if id == "" {
		return nil
	}
	var sess Session
	err := s.c.FindOne(ctx, bson.M{"_id": id, "logout_at": nil}).Decode(&sess)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil
	}
	if err != nil {
		return err
	}

	now := s.now()
	_, err = s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{
			"logout_at":     now,
			"end_reason":    reason,
			"duration_secs": int64(now.Sub(sess.LoginAt).Seconds()),
		},
	})
	return err
}

// CloseInactive closes open sessions idle for longer than threshold and
// returns how many were closed.
func (s *Store) CloseInactive(ctx context.Context, threshold time.Duration) (int64, error) {
	now := s.now()
	filter := bson.M{
		"logout_at":      nil,
		"last_active_at": bson.M{"$lt": now.Add(-threshold)},
	}
	return s.closeWhere(ctx, filter, EndInactive, now)
}

// Get retrieves a session by id.
func (s *Store) Get(ctx context.Context, id string) (Session, error) {
	var sess Session
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&sess)
	return sess, err
}

// Online returns open sessions active since the cutoff, most recent first.
func (s *Store) Online(ctx context.Context, since time.Time) ([]Session, error) {
	opts := options.Find().SetSort(bson.D{{Key: "last_active_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{
		"logout_at":      nil,
		"last_active_at": bson.M{"$gte": since},
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []Session{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// History returns an admin's sessions, newest first.
func (s *Store) History(ctx context.Context, adminID string, limit int64) ([]Session, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "login_at", Value: -1}}).
		SetLimit(limit)

	cur, err := s.c.Find(ctx, bson.M{"admin_id": adminID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []Session
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// closeWhere closes every session matching filter, computing durations
// from login_at with a pipeline update.
func (s *Store) closeWhere(ctx context.Context, filter bson.M, reason string, now time.Time) (int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"logout_at":  now,
			"end_reason": reason,
			"duration_secs": bson.M{"$toLong": bson.M{
				"$divide": bson.A{bson.M{"$subtract": bson.A{now, "$login_at"}}, 1000},
			}},
		}}},
	}
	res, err := s.c.UpdateMany(ctx, filter, pipeline)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
