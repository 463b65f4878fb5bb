package service

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"pm-dashboard/internal/model"
	"pm-dashboard/internal/pkg/config"
	"pm-dashboard/internal/pkg/logger"
)

func TestMain(m *testing.M) {
	// 降级路径会打日志, 测试前初始化
	_ = logger.Init(&config.LogConfig{Level: "error", Format: "console", Output: "stdout"})
	os.Exit(m.Run())
}

func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.All()...))
	return db
}

func seedProject(t *testing.T, db *gorm.DB, name string) *model.Project {
	t.Helper()
	project := &model.Project{Name: name}
	require.NoError(t, db.Create(project).Error)
	return project
}

// fakeAIClient 可编排的模型服务替身
type fakeAIClient struct {
	analyzeText string
	analyzeErr  error
	embeddings  map[string][]float64
	embedErr    error
	generated   string
	generateErr error
}

var errModelDown = errors.New("connection refused")

func (f *fakeAIClient) Analyze(_ context.Context, _ string) (string, error) {
	return f.analyzeText, f.analyzeErr
}

func (f *fakeAIClient) Embed(_ context.Context, text string) ([]float64, error) {
	if f.embedErr != nil {
		return nil, f.embedErr
	}
	if vec, ok := f.embeddings[text]; ok {
		return vec, nil
	}
	return []float64{1, 0, 0}, nil
}

func (f *fakeAIClient) Generate(_ context.Context, _ string) (string, error) {
	return f.generated, f.generateErr
}

// capturedMessage 记录服务层广播
type capturedMessage struct {
	Room    string
	MsgType string
	Payload interface{}
}

type fakePublisher struct {
	messages []capturedMessage
}

func (f *fakePublisher) Publish(room, msgType string, payload interface{}) {
	f.messages = append(f.messages, capturedMessage{Room: room, MsgType: msgType, Payload: payload})
}
