// Package cmd 命令行入口：run <task>。
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/LENAX/devrun/pkg/cli/output"
	"github.com/LENAX/devrun/pkg/config"
	"github.com/LENAX/devrun/pkg/core/command"
	"github.com/LENAX/devrun/pkg/core/executor"
	"github.com/LENAX/devrun/pkg/core/task"
	"github.com/LENAX/devrun/pkg/dispatch"
	"github.com/LENAX/devrun/pkg/help"
	"github.com/LENAX/devrun/pkg/logging"
	"github.com/LENAX/devrun/pkg/notify"
	"github.com/LENAX/devrun/pkg/project"
	"github.com/LENAX/devrun/pkg/tasks"
)

const programName = "run"

// Options 命令行选项与可替换依赖
type Options struct {
	ConfigPath string
	Root       string
	DryRun     bool
	Verbose    bool
	Echo       bool
	JSON       bool
	List       bool
	Plan       bool

	Stdout io.Writer
	Stderr io.Writer
	// Runner 为nil时根据配置选择ExecRunner或DryRunner
	Runner command.Runner
	// Chdir 为nil时使用os.Chdir
	Chdir func(string) error
	// Notifier 非nil时，日志器构建完成后替换其Logger，使异常日志遵循配置的级别
	Notifier *notify.Notifier
}

// NewRootCmd 创建根命令，退出码写入code
func NewRootCmd(opts *Options, code *int) *cobra.Command {
	root := &cobra.Command{
		Use:   programName + " [task]",
		Short: "项目任务编排工具：构建、检查、格式化与测试的统一入口",
		Long: `run 按固定顺序调用外部工具链命令，驱动项目的构建、lint、格式化与测试流程。

组合任务按声明顺序串行执行子任务，第一个失败即停止，
进程以该子任务的退出码结束。

使用示例：
  # 执行全部校验
  run validate

  # 只打印将要执行的命令
  run --dry-run validate

  # 查看任务展开后的执行计划
  run --plan check-format`,
		Args:          cobra.ArbitraryArgs,
		Version:       versionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			*code = execute(cmd, opts, args)
			return nil
		},
	}

	root.SetOut(opts.Stdout)
	root.SetErr(opts.Stderr)
	root.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		writeHelp(cmd)
	})

	flags := root.Flags()
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "配置文件路径（默认为项目根目录下的"+config.DefaultFile+"）")
	flags.StringVar(&opts.Root, "root", "", "项目根目录（默认向上查找标记文件）")
	flags.BoolVarP(&opts.DryRun, "dry-run", "n", false, "只打印命令，不执行")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "输出调试日志")
	flags.BoolVarP(&opts.Echo, "echo", "x", false, "执行前打印每条命令")
	flags.BoolVarP(&opts.JSON, "json", "j", false, "以JSON格式输出任务列表")
	flags.BoolVarP(&opts.List, "list", "l", false, "列出所有任务")
	flags.BoolVar(&opts.Plan, "plan", false, "打印任务展开后的命令序列，不执行")
	return root
}

// Execute 解析参数并执行，返回进程退出码
func Execute(ctx context.Context, args []string, opts *Options) int {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	code := 0
	root := NewRootCmd(opts, &code)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		// 仅参数解析错误会走到这里
		(&output.Printer{W: opts.Stderr}).Error("%v", err)
		if reg, regErr := tasks.NewCatalog(); regErr == nil {
			help.Render(opts.Stdout, programName, help.Usage(reg))
		}
		return dispatch.ExitUsage
	}
	return code
}

func execute(cmd *cobra.Command, opts *Options, args []string) int {
	errOut := &output.Printer{W: opts.Stderr}

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		errOut.Error("加载配置失败: %v", err)
		return 1
	}
	if err := output.SetColorMode(cfg.Run.General.Color); err != nil {
		errOut.Error("%v", err)
		return 1
	}

	logger, err := logging.New(cfg.GetLogLevel(), opts.Stderr)
	if err != nil {
		errOut.Error("%v", err)
		return 1
	}
	log := logging.WithRun(logger)
	if opts.Notifier != nil {
		opts.Notifier.Logger = log
	}

	reg, err := tasks.NewCatalog()
	if err != nil {
		log.WithError(err).Error("任务表非法")
		return 1
	}

	switch {
	case opts.List:
		return listTasks(opts, reg)
	case opts.Plan:
		return printPlan(opts, reg, args)
	}

	exec := executor.New(reg, selectRunner(opts, cfg), log)
	d := &dispatch.Dispatcher{
		Registry: reg,
		Executor: exec,
		Root: &project.Locator{
			Explicit: cfg.GetProjectRoot(),
			Markers:  cfg.GetMarkers(),
		},
		Usage:   opts.Stdout,
		Program: programName,
		Logger:  log,
		Chdir:   opts.Chdir,
	}
	if cfg.Run.Execution.DryRun {
		errOut.Info("dry-run：只打印命令，不会执行")
	}

	code := d.Dispatch(cmd.Context(), args)
	if code == 0 && opts.Verbose {
		errOut.Success("%s 执行完成", args[0])
	}
	return code
}

// loadConfig 配置文件 < 环境变量 < 命令行参数
func loadConfig(cmd *cobra.Command, opts *Options) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("root") {
		cfg.Run.Project.Root = opts.Root
	}
	if flags.Changed("dry-run") {
		cfg.Run.Execution.DryRun = opts.DryRun
	}
	if flags.Changed("echo") {
		cfg.Run.Execution.EchoCommands = opts.Echo
	}
	if opts.Verbose {
		cfg.Run.General.LogLevel = logrus.DebugLevel.String()
	}
	return cfg, nil
}

func selectRunner(opts *Options, cfg *config.Config) command.Runner {
	if opts.Runner != nil {
		return opts.Runner
	}
	if cfg.Run.Execution.DryRun {
		return &command.DryRunner{Out: opts.Stdout}
	}
	r := command.NewExecRunner(cfg.Run.Execution.EchoCommands)
	r.Stdout = opts.Stdout
	r.Stderr = opts.Stderr
	return r
}

func listTasks(opts *Options, reg *task.Registry) int {
	entries := help.Usage(reg)
	if opts.JSON {
		if err := help.RenderJSON(opts.Stdout, entries); err != nil {
			return 1
		}
		return 0
	}
	help.Render(opts.Stdout, programName, entries)
	return 0
}

func printPlan(opts *Options, reg *task.Registry, args []string) int {
	name := dispatch.NoTask
	if len(args) > 0 {
		name = args[0]
	}
	if _, err := reg.ResolveDispatchable(name); err != nil {
		help.Render(opts.Stdout, programName, help.Usage(reg))
		return dispatch.ExitUsage
	}
	plan, err := reg.Plan(name)
	if err != nil {
		return 1
	}

	if opts.JSON {
		type step struct {
			Task    string `json:"task"`
			Command string `json:"command"`
		}
		steps := make([]step, 0, len(plan))
		for _, p := range plan {
			steps = append(steps, step{Task: p.Name, Command: p.Command.String()})
		}
		if err := output.PrintJSON(opts.Stdout, steps); err != nil {
			return 1
		}
		return 0
	}

	table := output.NewTable([]string{"TASK", "COMMAND"})
	for _, p := range plan {
		table.AddRow([]string{p.Name, p.Command.String()})
	}
	table.Fprint(opts.Stdout)
	return 0
}

func writeHelp(cmd *cobra.Command) {
	w := cmd.OutOrStdout()
	if reg, err := tasks.NewCatalog(); err == nil {
		help.Render(w, programName, help.Usage(reg))
	}
	fmt.Fprintf(w, "\nFlags:\n%s", cmd.Flags().FlagUsages())
}
