package config

// Config 配置主体
type Config struct {
	Server               ServerConfig         `mapstructure:"server"`
	DB                   DBConfig             `mapstructure:"database"`
	Redis                RedisConfig          `mapstructure:"redis"`
	Logstash             LogstashConfig       `mapstructure:"logstash"`
	Kafka                KafkaConfig          `mapstructure:"kafka"`
	KafkaPostConsumer    KafkaConsumerBinding `mapstructure:"kafka_post_consumer"`
	KafkaLikeConsumer    KafkaConsumerBinding `mapstructure:"kafka_like_consumer"`
	KafkaCommentConsumer KafkaConsumerBinding `mapstructure:"kafka_comment_consumer"`
	Push                 PushConfig           `mapstructure:"push"`
	Scheduler            SchedulerConfig      `mapstructure:"scheduler"`
	Nudge                NudgeConfig          `mapstructure:"nudge"`
	Notification         NotificationConfig   `mapstructure:"notification"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// LogstashConfig 远程日志配置
type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

type KafkaConfig struct {
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
}

// KafkaConsumerBinding 每张被监听表对应一个 topic + group
type KafkaConsumerBinding struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}

// PushConfig 推送服务商配置
type PushConfig struct {
	URL       string `mapstructure:"url"`
	Token     string `mapstructure:"token"`
	BatchSize int    `mapstructure:"batch_size"`
	Timeout   int    `mapstructure:"timeout"`
}

// SchedulerConfig 外部定时调度服务配置
type SchedulerConfig struct {
	URL       string `mapstructure:"url"`
	ApiKey    string `mapstructure:"api_key"`
	Timezone  string `mapstructure:"timezone"`
	TargetURL string `mapstructure:"target_url"`
	// TriggerToken 外部调度器回调本服务时携带的凭据
	TriggerToken string `mapstructure:"trigger_token"`
}

// NudgeConfig 催更配置
type NudgeConfig struct {
	CooldownHours int `mapstructure:"cooldown_hours"`
}

// NotificationConfig 通知存储配置
type NotificationConfig struct {
	RetentionDays int `mapstructure:"retention_days"`
}
