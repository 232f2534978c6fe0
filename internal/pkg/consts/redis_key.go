package consts

const (
	NotificationCountKey = "notification:count:"
)
