package push

import (
	"context"
	log "log/slog"
	"time"

	"github.com/GenerateNU/dearly-sub000/internal/api/config"
	"github.com/go-resty/resty/v2"
)

// TicketErrorDeviceNotRegistered 服务商标记令牌已失效
const TicketErrorDeviceNotRegistered = "DeviceNotRegistered"

// Message 推送服务商的消息格式，to 为单批次的令牌集合
type Message struct {
	To    []string          `json:"to"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
	Sound string            `json:"sound,omitempty"`
}

// Ticket 单条消息的投递回执，与请求内令牌顺序一致
type Ticket struct {
	Token   string `json:"-"`
	Status  string `json:"status"`
	ID      string `json:"id"`
	Message string `json:"message"`
	Details struct {
		Error string `json:"error"`
	} `json:"details"`
}

type ticketResponse struct {
	Data []Ticket `json:"data"`
}

type Client struct {
	http      *resty.Client
	url       string
	batchSize int
}

func NewClient(cfg config.PushConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10
	}
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}

	client := resty.New().
		SetTimeout(time.Duration(timeout) * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if cfg.Token != "" {
		client.SetAuthToken(cfg.Token)
	}

	return &Client{
		http:      client,
		url:       cfg.URL,
		batchSize: batchSize,
	}
}

// Send 将令牌按服务商批次上限切块后逐批发送。
// 单批失败只记录日志，不影响其余批次；单条令牌的错误体现在回执里，
// 永远不会让调用方出错 —— 通知历史在推送之前已经落库，是唯一权威记录。
func (c *Client) Send(ctx context.Context, tokens []string, title, body string, data map[string]string) []Ticket {
	if len(tokens) == 0 {
		return nil
	}

	tickets := make([]Ticket, 0, len(tokens))
	for start := 0; start < len(tokens); start += c.batchSize {
		end := start + c.batchSize
		if end > len(tokens) {
			end = len(tokens)
		}
		chunk := tokens[start:end]

		chunkTickets, err := c.sendChunk(ctx, chunk, title, body, data)
		if err != nil {
			log.ErrorContext(ctx, "push batch failed", "size", len(chunk), "err", err)
			continue
		}
		tickets = append(tickets, chunkTickets...)
	}
	return tickets
}

func (c *Client) sendChunk(ctx context.Context, chunk []string, title, body string, data map[string]string) ([]Ticket, error) {
	payload := []Message{{
		To:    chunk,
		Title: title,
		Body:  body,
		Data:  data,
		Sound: "default",
	}}

	var parsed ticketResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&parsed).
		Post(c.url)
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, errResponse(resp)
	}

	// 回执与令牌按序对应，便于调用方识别报废令牌
	tickets := parsed.Data
	for i := range tickets {
		if i < len(chunk) {
			tickets[i].Token = chunk[i]
		}
	}
	return tickets, nil
}
