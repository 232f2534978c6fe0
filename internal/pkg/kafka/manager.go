package kafka

import (
	"context"
	log "log/slog"

	"github.com/GenerateNU/dearly-sub000/internal/api/config"
	"github.com/GenerateNU/dearly-sub000/internal/service"
	"github.com/IBM/sarama"
)

// ConsumerManager 管理所有 Kafka 消费者
type ConsumerManager struct {
	postConsumer sarama.ConsumerGroup
	postHandler  sarama.ConsumerGroupHandler

	likeConsumer sarama.ConsumerGroup
	likeHandler  sarama.ConsumerGroupHandler

	commentConsumer sarama.ConsumerGroup
	commentHandler  sarama.ConsumerGroupHandler
}

// NewConsumerManager 构造函数
func NewConsumerManager(cfg *config.Config, notifySvc service.NotifyService) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	postConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaPostConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}

	likeConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaLikeConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}

	commentConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaCommentConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}

	return &ConsumerManager{
		postConsumer:    postConsumer,
		postHandler:     NewPostsHandler(notifySvc),
		likeConsumer:    likeConsumer,
		likeHandler:     NewLikesHandler(notifySvc),
		commentConsumer: commentConsumer,
		commentHandler:  NewCommentsHandler(notifySvc),
	}, nil
}

// Start 启动所有消费者
func (m *ConsumerManager) Start(ctx context.Context, cfg *config.Config) error {
	// 启动 Post Consumer
	go func() {
		topic := cfg.KafkaPostConsumer.Topic
		log.Info("Post consumer started", "topic", topic)
		for {
			if err := m.postConsumer.Consume(ctx, []string{topic}, m.postHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	// 启动 Like Consumer
	go func() {
		topic := cfg.KafkaLikeConsumer.Topic
		log.Info("Like consumer started", "topic", topic)
		for {
			if err := m.likeConsumer.Consume(ctx, []string{topic}, m.likeHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	// 启动 Comment Consumer
	go func() {
		topic := cfg.KafkaCommentConsumer.Topic
		log.Info("Comment consumer started", "topic", topic)
		for {
			if err := m.commentConsumer.Consume(ctx, []string{topic}, m.commentHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.postConsumer.Close(); err != nil {
		log.Error("Failed to close post consumer", "err", err)
	}
	if err := m.likeConsumer.Close(); err != nil {
		log.Error("Failed to close like consumer", "err", err)
	}
	if err := m.commentConsumer.Close(); err != nil {
		log.Error("Failed to close comment consumer", "err", err)
	}

	return nil
}
