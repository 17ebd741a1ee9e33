package model

type Notification struct {
	ID        string `json:"id"`
	SaplingID string `json:"saplingId,omitempty"`
	Message   string `json:"message"`
	Type      string `json:"type"`
}

type GetNotificationsRequest struct{}

// SessionID is empty when the request carried no session header.
type GetNotificationsResponse struct {
	SessionID     string         `json:"sessionId,omitempty"`
	Notifications []Notification `json:"notifications"`
}

type DismissNotificationRequest struct {
	NotificationID string `json:"notificationId"`
}

// SessionID must be sent back in the session header so that the dismissal is
// remembered.
type DismissNotificationResponse struct {
	SessionID string `json:"sessionId"`
}
