package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/martinferreira/elasticsearch-net/internal/parser"
)

func newRenderCmd() *cobra.Command {
	var (
		format string
		indent int
		lax    bool
	)
	cmd := &cobra.Command{
		Use:   "render <watch.yaml>",
		Short: "校验定义文件并以 YAML 或 JSON 输出",
		Long:  `解析并校验定义文件，按规范化的字段顺序重新输出，不访问集群。`,
		Example: `  # YAML 转 JSON
  watcherctl render --format json watch.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := parser.Format(format)
			if out != parser.FormatYAML && out != parser.FormatJSON {
				return fmt.Errorf("不支持的输出格式 %q (yaml, json)", format)
			}

			p := parser.NewDefinitionParser()
			if lax {
				p.AllowMissingTrigger()
			}
			req, err := p.ParseFile(args[0])
			if err != nil {
				return fmt.Errorf("解析定义文件失败: %w", err)
			}

			data, err := parser.NewPrinter().WithIndent(indent).Print(req, out)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "o", string(parser.FormatYAML), "输出格式 (yaml, json)")
	cmd.Flags().IntVar(&indent, "indent", 2, "缩进空格数")
	cmd.Flags().BoolVar(&lax, "allow-missing-trigger", false, "允许缺少 trigger 的定义")
	return cmd
}
