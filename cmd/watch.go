package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/martinferreira/elasticsearch-net/internal/parser"
	"github.com/martinferreira/elasticsearch-net/pkg/logger"
)

func newPutCmd(a *app) *cobra.Command {
	var (
		id     string
		active bool
	)
	cmd := &cobra.Command{
		Use:   "put <watch.yaml>",
		Short: "从定义文件创建或更新 watch",
		Long: `读取 YAML 或 JSON 定义文件并写入集群。

文件与 --id 都未指定 id 时自动生成一个 UUID。`,
		Example: `  # 创建 watch
  watcherctl put cluster_health.yaml

  # 指定 id 并以停用状态创建
  watcherctl put --id cluster_health --active=false cluster_health.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := parser.NewDefinitionParser().ParseFile(args[0])
			if err != nil {
				return fmt.Errorf("解析定义文件失败: %w", err)
			}
			if id != "" {
				req.ID = id
			}
			if req.ID == "" {
				req.ID = uuid.NewString()
				logger.Info("generated watch id", zap.String("id", req.ID))
			}
			if cmd.Flags().Changed("active") {
				req.Active = &active
			}

			c := a.newClient()
			defer c.Close()
			resp, err := c.PutWatch(cmd.Context(), *req)
			if err != nil {
				return fmt.Errorf("写入 watch 失败: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "watch id (覆盖定义文件)")
	cmd.Flags().BoolVar(&active, "active", true, "创建后是否激活")
	return cmd
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "查询 watch 定义及状态",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.newClient()
			defer c.Close()
			resp, err := c.GetWatch(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("查询 watch 失败: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "删除 watch",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.newClient()
			defer c.Close()
			resp, err := c.DeleteWatch(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("删除 watch 失败: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
}

func newAckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ack <id> [action...]",
		Short: "确认 watch 的 action",
		Long:  `确认指定的 action，未指定 action 时确认全部 action。`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.newClient()
			defer c.Close()
			resp, err := c.AckWatch(cmd.Context(), args[0], args[1:]...)
			if err != nil {
				return fmt.Errorf("确认 watch 失败: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
}

func newActivateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "activate <id>",
		Short: "激活 watch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.newClient()
			defer c.Close()
			resp, err := c.ActivateWatch(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("激活 watch 失败: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
}

func newDeactivateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate <id>",
		Short: "停用 watch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.newClient()
			defer c.Close()
			resp, err := c.DeactivateWatch(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("停用 watch 失败: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}
}
