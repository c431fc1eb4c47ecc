// Package cmd 提供 watcherctl CLI 的命令实现
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/martinferreira/elasticsearch-net/api/rest/client"
	"github.com/martinferreira/elasticsearch-net/internal/config"
	"github.com/martinferreira/elasticsearch-net/internal/utils"
	"github.com/martinferreira/elasticsearch-net/pkg/logger"
)

const (
	// Version 是当前版本号
	Version = "0.1.0"
	// Banner 是版本信息中显示的 ASCII 艺术
	Banner = `
 __      __        __         .__
/  \    /  \____ _/  |_  ____ |  |__   ____  _______
\   \/\/   |__  \\   __\/ ___\|  |  \_/ __ \ \_  __ \
 \        / / __ \|  | \  \___|   Y  \  ___/  |  | \/
  \__/\  / (____  /__|  \___  >___|  /\___  > |__|
       \/       \/          \/     \/     \/   %s
`
)

// rootOptions 全局 flags
type rootOptions struct {
	cfgFile  string
	url      string
	username string
	password string
	insecure bool
	debug    bool
}

// app 保存一次命令执行的运行时状态
type app struct {
	opts rootOptions
}

// NewRootCmd 创建根命令及全部子命令
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "watcherctl",
		Short: "Elasticsearch Watcher 管理工具",
		Long: `watcherctl 用于管理 Elasticsearch Watcher 中的 watch，
支持从 YAML/JSON 定义文件创建 watch，查询、确认、激活、停用及执行 watch。`,
		Version:           Version,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.opts.cfgFile, "config", "", "配置文件路径")
	flags.StringVar(&a.opts.url, "url", "", "集群地址 (覆盖配置文件)")
	flags.StringVarP(&a.opts.username, "username", "u", "", "Basic 认证用户名")
	flags.StringVarP(&a.opts.password, "password", "p", "", "Basic 认证密码")
	flags.BoolVar(&a.opts.insecure, "insecure", false, "跳过 TLS 证书校验")
	flags.BoolVar(&a.opts.debug, "debug", false, "启用调试日志")

	// 禁用默认的 completion 命令
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetVersionTemplate(fmt.Sprintf(Banner, Version) + "\n")

	rootCmd.AddCommand(
		newPutCmd(a),
		newGetCmd(a),
		newDeleteCmd(a),
		newAckCmd(a),
		newActivateCmd(a),
		newDeactivateCmd(a),
		newExecuteCmd(a),
		newRenderCmd(),
	)
	return rootCmd
}

// GetRootCmd 返回根命令（用于测试）
func GetRootCmd() *cobra.Command {
	return NewRootCmd()
}

// Execute 执行根命令，收到 SIGINT/SIGTERM 时取消正在进行的请求
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := NewRootCmd().ExecuteContext(ctx)
	logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup 按 默认值 -> 配置文件 -> .env/环境变量 -> 命令行 的顺序加载配置
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	cfg := config.DefaultConfig()
	if a.opts.cfgFile != "" {
		loaded, err := config.LoadConfig(a.opts.cfgFile)
		if err != nil {
			return fmt.Errorf("加载配置失败: %w", err)
		}
		cfg = loaded
	}

	v := config.NewViper()
	flags := cmd.Root().PersistentFlags()
	for key, name := range map[string]string{
		"cluster.url":      "url",
		"cluster.username": "username",
		"cluster.password": "password",
		"cluster.insecure": "insecure",
	} {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return err
		}
	}
	if err := cfg.Overlay(v); err != nil {
		return fmt.Errorf("配置无效: %w", err)
	}

	if err := logger.Init(&cfg.Log); err != nil {
		return fmt.Errorf("初始化日志失败: %w", err)
	}
	if a.opts.debug {
		logger.EnableDebug()
	}

	config.SetConfig(cfg)
	return nil
}

// newClient 根据当前配置创建 REST 客户端
func (a *app) newClient() *client.Client {
	cluster := config.GetConfig().Cluster
	return client.NewClient(&client.Config{
		BaseURL:  cluster.URL,
		Username: cluster.Username,
		Password: cluster.Password,
		Timeout:  cluster.Timeout,
		Insecure: cluster.Insecure,
	})
}

// printJSON 以缩进 JSON 输出响应
func printJSON(w io.Writer, v any) error {
	s, err := utils.ToJSONPretty(v)
	if err != nil {
		return fmt.Errorf("格式化输出失败: %w", err)
	}
	_, err = fmt.Fprintln(w, s)
	return err
}
