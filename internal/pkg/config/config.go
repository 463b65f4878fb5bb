package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

var GlobalConfig *Config

// Config 全局配置
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Cache    CacheConfig    `mapstructure:"cache"`
	AI       AIConfig       `mapstructure:"ai"`
	Log      LogConfig      `mapstructure:"log"`
	Seed     SeedConfig     `mapstructure:"seed"`
	DB       interface{}    // 数据库连接,运行时注入
}

// ServerConfig 服务配置
type ServerConfig struct {
	Name           string  `mapstructure:"name"`
	Host           string  `mapstructure:"host"`
	Port           int     `mapstructure:"port"`
	Mode           string  `mapstructure:"mode"` // debug, release
	DemoMode       bool    `mapstructure:"demo_mode"`
	DemoProjectIDs []int64 `mapstructure:"demo_project_ids"` // demo_mode下可见的项目
	RateLimit      int     `mapstructure:"rate_limit"`       // 每秒请求数, 0表示不限流
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Database        string `mapstructure:"database"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // 秒
	LogLevel        string `mapstructure:"log_level"`         // SQL日志级别: silent/error/warn/info
}

// CacheConfig Redis缓存配置
type CacheConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTL      int    `mapstructure:"ttl"`       // 聚合缓存TTL, 秒
	QueueTTL int    `mapstructure:"queue_ttl"` // 离线消息队列TTL, 秒
}

// AIConfig 模型服务配置
type AIConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"` // 秒
	TopK    int    `mapstructure:"top_k"`   // RAG检索条数
}

// LogConfig 日志配置
type LogConfig struct {
	Level    string `mapstructure:"level"`  // debug, info, warn, error
	Format   string `mapstructure:"format"` // json, console
	Output   string `mapstructure:"output"` // stdout, file
	FilePath string `mapstructure:"file_path"`
}

// SeedConfig 字典表种子数据配置
type SeedConfig struct {
	File string `mapstructure:"file"` // seed.yaml路径, 为空则跳过
}

// Load 加载配置
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// 设置配置文件路径
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	// 读取环境变量
	v.AutomaticEnv()

	// 读取配置文件
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	// 解析配置
	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	// 设置全局配置
	GlobalConfig = config

	return config, nil
}

// GetDSN 获取数据库DSN
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.Username,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Addr Redis地址
func (c *CacheConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// GetTTL 聚合缓存TTL
func (c *CacheConfig) GetTTL() time.Duration {
	if c.TTL <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TTL) * time.Second
}

// GetQueueTTL 离线消息队列TTL
func (c *CacheConfig) GetQueueTTL() time.Duration {
	if c.QueueTTL <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.QueueTTL) * time.Second
}

// GetTimeout 模型服务请求超时
func (c *AIConfig) GetTimeout() time.Duration {
	if c.Timeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.Timeout) * time.Second
}

// GetTopK RAG检索条数
func (c *AIConfig) GetTopK() int {
	if c.TopK <= 0 {
		return 3
	}
	return c.TopK
}
