package ws

import (
	"encoding/json"
	"time"
)

// Message 房间广播消息帧
type Message struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp string      `json:"timestamp"`
}

// NewMessage 构造消息帧
func NewMessage(msgType string, payload interface{}) *Message {
	return &Message{
		Type:      msgType,
		Payload:   payload,
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// Encode 序列化为JSON帧
func (m *Message) Encode() ([]byte, error) {
	return json.Marshal(m)
}
