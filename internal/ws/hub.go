package ws

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"pm-dashboard/pkg/constants"
)

// Publisher 服务层广播接口, 写操作成功后调用
type Publisher interface {
	Publish(room, msgType string, payload interface{})
}

// Hub 房间连接注册表
// 互斥锁保护, 广播过程中连接的并发增删不会互相破坏
type Hub struct {
	mu      sync.RWMutex
	rooms   map[string]map[*Client]struct{}
	byID    map[string]*Client // client_id -> 连接, 离线消息投递用
	queue   *Queue             // 可为nil, 表示未启用离线队列
	logger  *zap.Logger
}

// NewHub 创建Hub
func NewHub(queue *Queue, logger *zap.Logger) *Hub {
	rooms := make(map[string]map[*Client]struct{}, len(constants.Rooms))
	for _, room := range constants.Rooms {
		rooms[room] = make(map[*Client]struct{})
	}
	return &Hub{
		rooms:  rooms,
		byID:   make(map[string]*Client),
		queue:  queue,
		logger: logger,
	}
}

// Register 将连接加入房间, 并补投离线消息
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.room]
	if !ok {
		// 路由层已校验房间名, 此处兜底
		room = make(map[*Client]struct{})
		h.rooms[client.room] = room
	}
	room[client] = struct{}{}
	if client.id != "" {
		h.byID[client.id] = client
	}
	h.mu.Unlock()

	h.logger.Info("websocket连接加入",
		zap.String("room", client.room), zap.String("client_id", client.id))

	// 按入队顺序补投离线消息
	if h.queue != nil && client.id != "" {
		frames, err := h.queue.Drain(context.Background(), client.id)
		if err != nil {
			h.logger.Warn("读取离线消息失败", zap.String("client_id", client.id), zap.Error(err))
			return
		}
		for _, frame := range frames {
			if !client.trySend(frame) {
				break
			}
		}
	}
}

// Unregister 将连接移出房间
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	if room, ok := h.rooms[client.room]; ok {
		if _, exists := room[client]; exists {
			delete(room, client)
			client.closeSend()
		}
	}
	if client.id != "" && h.byID[client.id] == client {
		delete(h.byID, client.id)
	}
	h.mu.Unlock()

	h.logger.Info("websocket连接离开",
		zap.String("room", client.room), zap.String("client_id", client.id))
}

// Broadcast 向房间内全部连接投递消息
// 发送失败或缓冲已满的连接直接剔除, 不向调用方抛错
func (h *Hub) Broadcast(room string, msg *Message) {
	frame, err := msg.Encode()
	if err != nil {
		h.logger.Error("消息序列化失败", zap.Error(err))
		return
	}

	h.mu.RLock()
	clients := make([]*Client, 0, len(h.rooms[room]))
	for client := range h.rooms[room] {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		if !client.trySend(frame) {
			h.Unregister(client)
		}
	}
}

// Publish 实现Publisher接口
func (h *Hub) Publish(room, msgType string, payload interface{}) {
	h.Broadcast(room, NewMessage(msgType, payload))
}

// SendTo 面向单个client_id投递, 不在线则进离线队列
func (h *Hub) SendTo(ctx context.Context, clientID, msgType string, payload interface{}) error {
	msg := NewMessage(msgType, payload)
	frame, err := msg.Encode()
	if err != nil {
		return err
	}

	h.mu.RLock()
	client, online := h.byID[clientID]
	h.mu.RUnlock()

	if online {
		if client.trySend(frame) {
			return nil
		}
		h.Unregister(client)
	}

	if h.queue == nil {
		return nil // 未启用离线队列, 消息直接丢弃
	}
	return h.queue.Enqueue(ctx, clientID, frame)
}

// RoomSize 房间当前连接数
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}
