package ws

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 64
)

// Client 单个websocket连接
type Client struct {
	id   string // 客户端标识, 离线消息寻址用; 匿名连接随机生成
	room string
	conn *websocket.Conn
	send chan []byte

	closeOnce sync.Once
	logger    *zap.Logger
}

// NewClient 创建连接包装
// clientID为空时生成随机标识, 该连接不参与离线补投
func NewClient(conn *websocket.Conn, room, clientID string, logger *zap.Logger) *Client {
	if clientID == "" {
		clientID = uuid.NewString()
	}
	return &Client{
		id:     clientID,
		room:   room,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
		logger: logger,
	}
}

// newTestClient 测试专用, 无底层连接
func newTestClient(room, clientID string, logger *zap.Logger) *Client {
	return &Client{
		id:     clientID,
		room:   room,
		send:   make(chan []byte, sendBufferSize),
		logger: logger,
	}
}

// ID 客户端标识
func (c *Client) ID() string { return c.id }

// Room 所属房间
func (c *Client) Room() string { return c.room }

// trySend 非阻塞投递, 缓冲满或已关闭时返回false
func (c *Client) trySend(frame []byte) bool {
	defer func() {
		// send已关闭时的写入恢复为失败
		_ = recover()
	}()
	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

// closeSend 关闭发送通道, 仅执行一次
func (c *Client) closeSend() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

// WritePump 将send通道中的帧写入连接, 配合心跳
// 写失败即退出, Hub在下次投递时剔除该连接
func (c *Client) WritePump(hub *Hub) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				hub.Unregister(c)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				hub.Unregister(c)
				return
			}
		}
	}
}

// ReadPump 消费入站帧直到连接断开
// 入站内容只用于探测断连, 客户端消息不承载业务语义
func (c *Client) ReadPump(hub *Hub) {
	defer func() {
		hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug("websocket异常断开", zap.String("client_id", c.id), zap.Error(err))
			}
			return
		}
	}
}
