package models

// DefaultNotificationIcon is used when a push message carries no image.
const DefaultNotificationIcon = "/favicon.ico"

// PushNotification is the visible part of a background push message.
type PushNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Image string `json:"image,omitempty"`
}

// PushMessage is the payload delivered by the push provider: { notification: { title, body, image? } }.
type PushMessage struct {
	Notification PushNotification `json:"notification"`
}

// Icon returns the notification image or [DefaultNotificationIcon].
func (m PushMessage) Icon() string {
	if m.Notification.Image == "" {
		return DefaultNotificationIcon
	}
	return m.Notification.Image
}
