package kafka

// CanalMessage 是 Canal 投递到 Kafka 的变更事件信封，
// 只保留通知链路会读取的字段，其余字段解码时忽略
type CanalMessage struct {
	Database string `json:"database"`
	Table    string `json:"table"`
	Type     string `json:"type"` // INSERT / UPDATE / DELETE
	TS       int64  `json:"ts"`

	// Data 为变更后的行，列值统一为字符串或 null
	Data []map[string]interface{} `json:"data"`
}
