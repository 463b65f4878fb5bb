package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"pm-dashboard/internal/pkg/logger"
	"pm-dashboard/internal/ws"
	"pm-dashboard/pkg/constants"
	"pm-dashboard/pkg/responses"
)

// 页面与API同源, 升级请求不做来源校验
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WSHandler websocket接入
type WSHandler struct {
	hub *ws.Hub
}

func NewWSHandler(hub *ws.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

// Serve 建立房间连接
// @Summary 建立房间websocket连接
// @Tags WebSocket
// @Param room path string true "房间名 dashboard/projects/resources/risks/general"
// @Param client_id query string false "客户端标识, 传入后参与离线消息补投"
// @Router /ws/{room} [get]
func (h *WSHandler) Serve(c *gin.Context) {
	room := c.Param("room")
	if !constants.IsValidRoom(room) {
		responses.Error(c, responses.ErrUnknownRoom)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade失败时gorilla已写入HTTP错误响应
		logger.Warn("websocket升级失败", zap.String("room", room), zap.Error(err))
		return
	}

	client := ws.NewClient(conn, room, c.Query("client_id"), logger.Log)
	h.hub.Register(client)

	go client.WritePump(h.hub)
	go client.ReadPump(h.hub)
}

// Rooms 房间在线统计
// @Summary 各房间当前连接数
// @Tags WebSocket
// @Produce json
// @Success 200 {object} responses.Response
// @Router /api/v1/ws/rooms [get]
func (h *WSHandler) Rooms(c *gin.Context) {
	sizes := make(map[string]int, len(constants.Rooms))
	for _, room := range constants.Rooms {
		sizes[room] = h.hub.RoomSize(room)
	}
	responses.Success(c, sizes)
}
