package kafka

import (
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCanalMessage(t *testing.T) {
	payload := []byte(`{
		"database": "dearly",
		"table": "likes",
		"type": "INSERT",
		"data": [{"id": "200", "user_id": "11", "post_id": "100"}]
	}`)

	msg, err := ToCanalMessage(&sarama.ConsumerMessage{Value: payload}, "likes")
	require.NoError(t, err)
	assert.Equal(t, "INSERT", msg.Type)
	assert.Equal(t, uint64(200), StrToUint64(msg.Data[0]["id"]))
}

func TestToCanalMessageTableMismatch(t *testing.T) {
	payload := []byte(`{"table": "posts", "type": "INSERT", "data": [{"id": "1"}]}`)

	_, err := ToCanalMessage(&sarama.ConsumerMessage{Value: payload}, "likes")
	assert.Error(t, err)
}

func TestToCanalMessageEmptyData(t *testing.T) {
	payload := []byte(`{"table": "likes", "type": "INSERT", "data": []}`)

	_, err := ToCanalMessage(&sarama.ConsumerMessage{Value: payload}, "likes")
	assert.Error(t, err)
}

func TestToCanalMessageBadJSON(t *testing.T) {
	_, err := ToCanalMessage(&sarama.ConsumerMessage{Value: []byte("{not json")}, "likes")
	assert.Error(t, err)
}

func TestConvertHelpers(t *testing.T) {
	assert.Equal(t, uint64(42), StrToUint64("42"))
	assert.Equal(t, uint64(0), StrToUint64("abc"))
	assert.Equal(t, uint64(0), StrToUint64(nil))

	assert.Equal(t, 7, StrToInt("7"))
	assert.Equal(t, 0, StrToInt(""))

	assert.Equal(t, "hello", StrToString("hello"))
	assert.Equal(t, "", StrToString(nil))
	assert.Equal(t, "3.5", StrToString(3.5))

	got := StrToDateTime("2025-06-02 12:30:00")
	assert.Equal(t, time.Date(2025, 6, 2, 12, 30, 0, 0, time.Local), got)
	assert.True(t, StrToDateTime("garbage").IsZero())
}
