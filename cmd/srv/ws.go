package main

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/vriksha-lab/backend/internal/model"
	"github.com/vriksha-lab/backend/pkg/ws"
	"github.com/vriksha-lab/backend/pkg/xcontext"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type wsMessage struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// serveWs upgrades the connection and streams the pending notifications of
// the user, plus the store change signals every client receives. Browsers
// cannot set headers on a websocket, so the user and the session come from
// the query string. Sending "sync" asks for the current notifications.
func (s *srv) serveWs(ginCtx *gin.Context) {
	userID := ginCtx.Query("user_id")
	if userID == "" {
		http.Error(ginCtx.Writer, "Require a user_id", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(ginCtx.Writer, ginCtx.Request, nil)
	if err != nil {
		xcontext.Logger(s.ctx).Debugf("Cannot upgrade websocket: %v", err)
		return
	}

	sessionID := ginCtx.Query("session_id")
	session := s.generator.Resume(sessionID, userID)
	if sessionID == "" {
		defer s.generator.CloseSession(session.ID())
	}

	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()
	ctx = xcontext.WithRequestUserID(ctx, userID)
	ctx = xcontext.WithSessionID(ctx, session.ID())

	channel := "notifications:" + uuid.NewString()
	push := func(resp *model.GetNotificationsResponse) {
		b, err := json.Marshal(wsMessage{Type: "notifications", Data: resp})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot marshal notifications: %v", err)
			return
		}
		s.hub.BroadcastByChannel(channel, b)
	}

	// The first push must find the client registered on its channel.
	client := ws.NewClient(conn, channel, false)
	if !client.Register(s.hub) {
		return
	}

	go func() {
		if err := s.notificationDomain.Follow(ctx, push); err != nil {
			xcontext.Logger(ctx).Debugf("Cannot follow notifications: %v", err)
		}
	}()

	client.Serve(s.hub, func(msg []byte) {
		if string(msg) != "sync" {
			return
		}

		resp, err := s.notificationDomain.GetNotifications(ctx, &model.GetNotificationsRequest{})
		if err != nil {
			return
		}
		push(resp)
	})
}
