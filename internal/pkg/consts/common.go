package consts

// Canal 消息事件类型
const (
	INSERT = "INSERT"
	UPDATE = "UPDATE"
	DELETE = "DELETE"
)

const (
	// MaxNotificationPageSize 通知历史单页上限
	MaxNotificationPageSize = 50
)
