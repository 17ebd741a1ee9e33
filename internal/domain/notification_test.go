package domain

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vriksha-lab/backend/internal/domain/notification"
	"github.com/vriksha-lab/backend/internal/domain/store"
	"github.com/vriksha-lab/backend/internal/entity"
	"github.com/vriksha-lab/backend/internal/model"
	"github.com/vriksha-lab/backend/pkg/errorx"
	"github.com/vriksha-lab/backend/pkg/testutil"
	"github.com/vriksha-lab/backend/pkg/xcontext"
)

func notificationIDs(resp *model.GetNotificationsResponse) []string {
	ids := []string{}
	for _, n := range resp.Notifications {
		ids = append(ids, n.ID)
	}
	return ids
}

func Test_notificationDomain_Dismiss(t *testing.T) {
	generator := notification.NewGenerator(testutil.NewDemoStore())
	defer generator.Stop()
	d := NewNotificationDomain(generator)

	ctx := testutil.MockContextWithUserID("user-1")
	resp, err := d.GetNotifications(ctx, &model.GetNotificationsRequest{})
	require.NoError(t, err)
	require.Empty(t, resp.SessionID)
	require.Equal(t, []string{"recovered-update-3"}, notificationIDs(resp))
	require.Equal(t, "success", resp.Notifications[0].Type)

	// Dismissing without a session opens one.
	dismissResp, err := d.Dismiss(ctx, &model.DismissNotificationRequest{NotificationID: "recovered-update-3"})
	require.NoError(t, err)
	require.NotEmpty(t, dismissResp.SessionID)

	sessionCtx := xcontext.WithSessionID(ctx, dismissResp.SessionID)
	resp, err = d.GetNotifications(sessionCtx, &model.GetNotificationsRequest{})
	require.NoError(t, err)
	require.Equal(t, dismissResp.SessionID, resp.SessionID)
	require.Empty(t, resp.Notifications)

	// Without the session everything shows again.
	resp, err = d.GetNotifications(ctx, &model.GetNotificationsRequest{})
	require.NoError(t, err)
	require.Equal(t, []string{"recovered-update-3"}, notificationIDs(resp))

	_, err = d.Dismiss(sessionCtx, &model.DismissNotificationRequest{})
	require.True(t, errorx.Is(err, errorx.BadRequest))

	_, err = d.GetNotifications(testutil.MockContext(), &model.GetNotificationsRequest{})
	require.True(t, errorx.Is(err, errorx.Unauthenticated))
}

func Test_notificationDomain_DismissInNewSession(t *testing.T) {
	generator := notification.NewGenerator(testutil.NewDemoStore())
	defer generator.Stop()
	d := NewNotificationDomain(generator)

	ctx := xcontext.WithSessionID(testutil.MockContextWithUserID("user-1"), "tab-42")
	resp, err := d.Dismiss(ctx, &model.DismissNotificationRequest{NotificationID: "recovered-update-3"})
	require.NoError(t, err)
	require.Equal(t, "tab-42", resp.SessionID)

	pending, err := d.GetNotifications(ctx, &model.GetNotificationsRequest{})
	require.NoError(t, err)
	require.Empty(t, pending.Notifications)
	require.Equal(t, 1, generator.Len())
}

func Test_notificationDomain_SessionsStayBounded(t *testing.T) {
	generator := notification.NewGenerator(testutil.NewDemoStore(), notification.WithMaxSessions(5))
	defer generator.Stop()
	d := NewNotificationDomain(generator)

	ctx := testutil.MockContextWithUserID("user-1")
	for i := 0; i < 100; i++ {
		_, err := d.GetNotifications(ctx, &model.GetNotificationsRequest{})
		require.NoError(t, err)
	}
	require.Equal(t, 0, generator.Len())

	for i := 0; i < 100; i++ {
		sessionCtx := xcontext.WithSessionID(ctx, fmt.Sprintf("tab-%d", i))
		_, err := d.GetNotifications(sessionCtx, &model.GetNotificationsRequest{})
		require.NoError(t, err)
	}
	require.LessOrEqual(t, generator.Len(), 5)
}

func Test_notificationDomain_Follow(t *testing.T) {
	s := testutil.NewDemoStore()
	generator := notification.NewGenerator(s)
	defer generator.Stop()
	d := NewNotificationDomain(generator)

	ctx, cancel := context.WithCancel(testutil.MockContextWithUserID("user-1"))
	pushes := make(chan *model.GetNotificationsResponse, 8)
	done := make(chan error, 1)
	go func() {
		done <- d.Follow(ctx, func(resp *model.GetNotificationsResponse) {
			pushes <- resp
		})
	}()

	first := <-pushes
	require.Equal(t, []string{"recovered-update-3"}, notificationIDs(first))

	u, err := s.AddSaplingUpdate(context.Background(), store.AddUpdateParams{
		SaplingID: "sapling-4", Status: entity.NeedsWater, UserID: "user-1",
	})
	require.NoError(t, err)

	select {
	case resp := <-pushes:
		require.Equal(t, []string{"recovered-update-3", "water-" + u.ID}, notificationIDs(resp))
	case <-time.After(time.Second):
		require.FailNow(t, "no push after a change")
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		require.FailNow(t, "follow did not stop")
	}
	require.Equal(t, 0, generator.Len())
}
