package domain

import (
	"context"

	"github.com/vriksha-lab/backend/internal/domain/notification"
	"github.com/vriksha-lab/backend/internal/model"
	"github.com/vriksha-lab/backend/pkg/errorx"
	"github.com/vriksha-lab/backend/pkg/xcontext"
)

type NotificationDomain interface {
	GetNotifications(context.Context, *model.GetNotificationsRequest) (*model.GetNotificationsResponse, error)
	Dismiss(context.Context, *model.DismissNotificationRequest) (*model.DismissNotificationResponse, error)
	Follow(ctx context.Context, push func(*model.GetNotificationsResponse)) error
}

type notificationDomain struct {
	generator *notification.Generator
}

func NewNotificationDomain(generator *notification.Generator) *notificationDomain {
	return &notificationDomain{generator: generator}
}

// session resumes the session named by the session header. Without a header
// a read is answered from a transient session, while a dismissal opens a new
// stored session whose id is returned to the caller.
func (d *notificationDomain) session(ctx context.Context, store bool) (*notification.Session, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Require a signed in user")
	}

	sessionID := xcontext.SessionID(ctx)
	if sessionID == "" && !store {
		return d.generator.Transient(userID), nil
	}

	return d.generator.Resume(sessionID, userID), nil
}

func (d *notificationDomain) GetNotifications(
	ctx context.Context, req *model.GetNotificationsRequest,
) (*model.GetNotificationsResponse, error) {
	session, err := d.session(ctx, false)
	if err != nil {
		return nil, err
	}

	return pendingOf(session), nil
}

func (d *notificationDomain) Dismiss(
	ctx context.Context, req *model.DismissNotificationRequest,
) (*model.DismissNotificationResponse, error) {
	if req.NotificationID == "" {
		return nil, errorx.New(errorx.BadRequest, "Require a notification id")
	}

	session, err := d.session(ctx, true)
	if err != nil {
		return nil, err
	}

	session.Dismiss(req.NotificationID)
	return &model.DismissNotificationResponse{SessionID: session.ID()}, nil
}

// Follow pushes the pending notifications once, then again after every
// change, until ctx is done or the session is closed. The session is kept
// from eviction while Follow runs; one opened here is closed on return.
func (d *notificationDomain) Follow(
	ctx context.Context, push func(*model.GetNotificationsResponse),
) error {
	session, err := d.session(ctx, true)
	if err != nil {
		return err
	}

	if xcontext.SessionID(ctx) == "" {
		defer d.generator.CloseSession(session.ID())
	}

	release := d.generator.Hold(session)
	defer release()

	push(pendingOf(session))
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-session.Changed():
			if !ok {
				return nil
			}
			push(pendingOf(session))
		}
	}
}

func pendingOf(session *notification.Session) *model.GetNotificationsResponse {
	pending := session.Pending()

	resp := &model.GetNotificationsResponse{
		SessionID:     session.ID(),
		Notifications: make([]model.Notification, 0, len(pending)),
	}
	for _, n := range pending {
		resp.Notifications = append(resp.Notifications, convertNotification(n))
	}
	return resp
}
