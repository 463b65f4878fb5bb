package ws

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pm-dashboard/pkg/constants"
)

func recvFrame(t *testing.T, client *Client) *Message {
	t.Helper()
	select {
	case frame := <-client.send:
		var msg Message
		require.NoError(t, json.Unmarshal(frame, &msg))
		return &msg
	default:
		t.Fatal("期望收到消息帧")
		return nil
	}
}

func TestHub_BroadcastRoomIsolation(t *testing.T) {
	hub := NewHub(nil, zap.NewNop())

	projectClient := newTestClient(constants.RoomProjects, "client-a", zap.NewNop())
	riskClient := newTestClient(constants.RoomRisks, "client-b", zap.NewNop())
	hub.Register(projectClient)
	hub.Register(riskClient)

	hub.Publish(constants.RoomProjects, constants.MsgTypeEntityCreated, map[string]int64{"id": 1})

	msg := recvFrame(t, projectClient)
	assert.Equal(t, constants.MsgTypeEntityCreated, msg.Type)
	assert.NotEmpty(t, msg.Timestamp)

	// 其他房间不受影响
	assert.Empty(t, riskClient.send)
}

func TestHub_BroadcastEvictsFullClient(t *testing.T) {
	hub := NewHub(nil, zap.NewNop())

	stuck := newTestClient(constants.RoomDashboard, "stuck", zap.NewNop())
	healthy := newTestClient(constants.RoomDashboard, "healthy", zap.NewNop())
	hub.Register(stuck)
	hub.Register(healthy)
	require.Equal(t, 2, hub.RoomSize(constants.RoomDashboard))

	// 灌满发送缓冲, 模拟消费停滞的连接
	for i := 0; i < sendBufferSize; i++ {
		require.True(t, stuck.trySend([]byte("{}")))
	}

	hub.Publish(constants.RoomDashboard, constants.MsgTypeNotification, "刷新")

	// 缓冲满的连接被剔除, 健康连接正常收到消息
	assert.Equal(t, 1, hub.RoomSize(constants.RoomDashboard))
	msg := recvFrame(t, healthy)
	assert.Equal(t, constants.MsgTypeNotification, msg.Type)
}

func TestHub_Unregister(t *testing.T) {
	hub := NewHub(nil, zap.NewNop())

	client := newTestClient(constants.RoomGeneral, "client-c", zap.NewNop())
	hub.Register(client)
	require.Equal(t, 1, hub.RoomSize(constants.RoomGeneral))

	hub.Unregister(client)
	assert.Equal(t, 0, hub.RoomSize(constants.RoomGeneral))

	// 重复注销不会panic
	hub.Unregister(client)
	assert.Equal(t, 0, hub.RoomSize(constants.RoomGeneral))
}

func TestHub_SendTo(t *testing.T) {
	hub := NewHub(nil, zap.NewNop())

	client := newTestClient(constants.RoomGeneral, "online-client", zap.NewNop())
	hub.Register(client)

	t.Run("online delivery", func(t *testing.T) {
		require.NoError(t, hub.SendTo(context.Background(), "online-client", constants.MsgTypeNotification, "到货提醒"))
		msg := recvFrame(t, client)
		assert.Equal(t, constants.MsgTypeNotification, msg.Type)
		assert.Equal(t, "到货提醒", msg.Payload)
	})

	t.Run("offline without queue drops message", func(t *testing.T) {
		// 未启用离线队列时不在线的消息直接丢弃, 不报错
		require.NoError(t, hub.SendTo(context.Background(), "absent-client", constants.MsgTypeNotification, "离线消息"))
	})
}

func TestMessage_Encode(t *testing.T) {
	msg := NewMessage(constants.MsgTypeEntityUpdated, map[string]string{"name": "项目A"})
	frame, err := msg.Encode()
	require.NoError(t, err)

	var decoded Message
	require.NoError(t, json.Unmarshal(frame, &decoded))
	assert.Equal(t, constants.MsgTypeEntityUpdated, decoded.Type)
	assert.NotEmpty(t, decoded.Timestamp)
}
