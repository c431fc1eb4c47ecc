package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/duke-git/lancet/v2/slice"
	"github.com/spf13/cobra"

	"github.com/martinferreira/elasticsearch-net/internal/parser"
	"github.com/martinferreira/elasticsearch-net/internal/utils"
	"github.com/martinferreira/elasticsearch-net/pkg/watcher"
)

var executionModes = []watcher.ActionExecutionMode{
	watcher.ModeSimulate,
	watcher.ModeForceSimulate,
	watcher.ModeExecute,
	watcher.ModeForceExecute,
	watcher.ModeSkip,
}

// executeOptions execute 命令的 flags
type executeOptions struct {
	file             string
	ignoreCondition  bool
	record           bool
	debugRun         bool
	modes            []string
	alternativeInput string
}

func newExecuteCmd(a *app) *cobra.Command {
	opts := &executeOptions{}
	cmd := &cobra.Command{
		Use:   "execute [id]",
		Short: "执行已存储的 watch 或内联定义",
		Long: `立即执行一次 watch。

指定 id 时执行已存储的 watch；使用 --file 时执行定义文件中的内联 watch，
内联定义可以不包含 trigger。`,
		Example: `  # 执行已存储的 watch，忽略条件
  watcherctl execute cluster_health --ignore-condition

  # 模拟执行内联 watch 的全部 action
  watcherctl execute --file watch.yaml --mode _all=simulate

  # 替换输入数据
  watcherctl execute cluster_health --alternative-input '{"status":"red"}'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := opts.request(args)
			if err != nil {
				return err
			}
			c := a.newClient()
			defer c.Close()
			resp, err := c.ExecuteWatch(cmd.Context(), *req)
			if err != nil {
				return fmt.Errorf("执行 watch 失败: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), resp)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.file, "file", "f", "", "内联 watch 定义文件")
	flags.BoolVar(&opts.ignoreCondition, "ignore-condition", false, "忽略条件，总是执行 action")
	flags.BoolVar(&opts.record, "record", false, "将执行记录写入 watch 历史")
	flags.BoolVar(&opts.debugRun, "debug-run", false, "返回执行过程的调试信息")
	flags.StringArrayVar(&opts.modes, "mode", nil, "action 执行模式 (可多次指定)，格式: action=mode，_all 表示全部 action")
	flags.StringVar(&opts.alternativeInput, "alternative-input", "", "替换输入的 JSON 对象")
	return cmd
}

// request 根据参数和 flags 构建执行请求
func (o *executeOptions) request(args []string) (*watcher.ExecuteWatchRequest, error) {
	req := &watcher.ExecuteWatchRequest{
		IgnoreCondition: o.ignoreCondition,
		RecordExecution: o.record,
		Debug:           o.debugRun,
	}
	if len(args) == 1 {
		req.ID = args[0]
	}

	switch {
	case req.ID != "" && o.file != "":
		return nil, errors.New("id 和 --file 不能同时指定")
	case req.ID == "" && o.file == "":
		return nil, errors.New("需要指定 id 或 --file")
	case o.file != "":
		def, err := parser.NewDefinitionParser().AllowMissingTrigger().ParseFile(o.file)
		if err != nil {
			return nil, fmt.Errorf("解析定义文件失败: %w", err)
		}
		req.Watch = &def.WatchDefinition
	}

	for _, m := range o.modes {
		name, mode, ok := strings.Cut(m, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("无效的执行模式 %q，格式: action=mode", m)
		}
		if !slice.Contain(executionModes, watcher.ActionExecutionMode(mode)) {
			return nil, fmt.Errorf("未知的执行模式 %q", mode)
		}
		if req.ActionModes == nil {
			req.ActionModes = make(map[string]watcher.ActionExecutionMode)
		}
		req.ActionModes[name] = watcher.ActionExecutionMode(mode)
	}

	if o.alternativeInput != "" {
		if err := utils.UnmarshalString(o.alternativeInput, &req.AlternativeInput); err != nil {
			return nil, fmt.Errorf("解析 --alternative-input 失败: %w", err)
		}
	}
	return req, nil
}
