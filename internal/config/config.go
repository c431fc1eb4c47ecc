package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/martinferreira/elasticsearch-net/pkg/logger"
)

// EnvPrefix 环境变量前缀，例如 WATCHER_CLUSTER_URL
const EnvPrefix = "WATCHER"

// Config 全局配置结构
type Config struct {
	Cluster ClusterConfig `yaml:"cluster"`
	Log     logger.Config `yaml:"log"`
}

// ClusterConfig 集群连接配置
type ClusterConfig struct {
	URL      string        `yaml:"url"`
	Username string        `yaml:"username"`
	Password string        `yaml:"password"`
	Timeout  time.Duration `yaml:"timeout"`
	Insecure bool          `yaml:"insecure"` // 跳过 TLS 证书校验
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Cluster: ClusterConfig{
			URL:     "http://localhost:9200",
			Timeout: 30 * time.Second,
		},
		Log: *logger.DefaultConfig(),
	}
}

var (
	globalConfig *Config
	mu           sync.RWMutex
)

// LoadConfig 加载配置文件，未出现的字段保留默认值
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDotEnv 加载 .env 文件到环境变量，文件不存在时忽略
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// NewViper 创建读取 WATCHER_ 前缀环境变量的 viper 实例
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Overlay 用环境变量和命令行参数覆盖配置，只覆盖显式设置的键
func (c *Config) Overlay(v *viper.Viper) error {
	if v.IsSet("cluster.url") {
		c.Cluster.URL = v.GetString("cluster.url")
	}
	if v.IsSet("cluster.username") {
		c.Cluster.Username = v.GetString("cluster.username")
	}
	if v.IsSet("cluster.password") {
		c.Cluster.Password = v.GetString("cluster.password")
	}
	if v.IsSet("cluster.timeout") {
		c.Cluster.Timeout = v.GetDuration("cluster.timeout")
	}
	if v.IsSet("cluster.insecure") {
		c.Cluster.Insecure = v.GetBool("cluster.insecure")
	}
	if v.IsSet("log.level") {
		c.Log.Level = v.GetString("log.level")
	}
	if v.IsSet("log.format") {
		c.Log.Format = v.GetString("log.format")
	}
	return c.Validate()
}

// Validate 校验配置
func (c *Config) Validate() error {
	u, err := url.Parse(c.Cluster.URL)
	if err != nil {
		return fmt.Errorf("cluster.url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("cluster.url: scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("cluster.url: missing host")
	}
	if c.Cluster.Timeout <= 0 {
		return fmt.Errorf("cluster.timeout must be positive")
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// GetConfig 获取全局配置
func GetConfig() *Config {
	mu.RLock()
	defer mu.RUnlock()
	return globalConfig
}

// SetConfig 设置全局配置
func SetConfig(cfg *Config) {
	mu.Lock()
	defer mu.Unlock()
	globalConfig = cfg
}
