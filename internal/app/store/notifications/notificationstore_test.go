package notificationstore_test

import (
	"context"
	"net/http"
	"testing"

	notificationstore "github.com/dalemusser/tankerhub/internal/app/store/notifications"
	"github.com/dalemusser/tankerhub/internal/domain/models"
	"github.com/dalemusser/tankerhub/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSend_CustomerIDOnlyForSingleCustomer(t *testing.T) {
	fb := testutil.NewFakeBackend(t)
	fb.Handle(http.MethodPost, "/api/notification/send", http.StatusCreated, map[string]any{"_id": "n1"})
	s := notificationstore.New(fb.Client(t))
	ctx := context.Background()

	_, err := s.Send(ctx, notificationstore.Input{Title: "Outage", Message: "m", Audience: models.AudienceAll, CustomerID: "c1"})
	require.NoError(t, err)
	req, _ := fb.Last(http.MethodPost, "/api/notification/send")
	_, has := req.Body["customerId"]
	assert.False(t, has)

	_, err = s.Send(ctx, notificationstore.Input{Title: "Hi", Message: "m", Audience: models.AudienceCustomer, CustomerID: "c1"})
	require.NoError(t, err)
	req, _ = fb.Last(http.MethodPost, "/api/notification/send")
	assert.Equal(t, "c1", req.Body["customerId"])
}
