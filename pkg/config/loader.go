package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/LENAX/devrun/pkg/project"
)

// 环境变量覆盖项
const (
	EnvLogLevel = "RUN_LOG_LEVEL"
	EnvRoot     = "RUN_ROOT"
	EnvDryRun   = "RUN_DRY_RUN"
	EnvEcho     = "RUN_ECHO"
)

// Load 加载配置文件
// path为空时读取DefaultPath("")，该文件不存在则返回默认配置；
// 显式指定的path不存在时返回错误。加载后依次应用环境变量、默认值并校验。
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath("")
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("解析配置文件 %s 失败: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// 使用默认配置
	default:
		return nil, fmt.Errorf("读取配置文件 %s 失败: %w", path, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultPath 默认配置文件路径
// 从start（为空时取当前目录）向上查找，第一个包含DefaultFile或默认根目录标记的
// 目录即项目根目录，返回其中的DefaultFile；找不到时退回当前目录下的DefaultFile。
func DefaultPath(start string) string {
	loc := &project.Locator{
		Start:   start,
		Markers: append([]string{DefaultFile}, DefaultMarkers...),
	}
	root, err := loc.FindRoot()
	if err != nil {
		return DefaultFile
	}
	return filepath.Join(root, DefaultFile)
}

func applyEnv(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Run.General.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvRoot)); v != "" {
		cfg.Run.Project.Root = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDryRun)); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s必须是布尔值: %q", EnvDryRun, v)
		}
		cfg.Run.Execution.DryRun = b
	}
	if v := strings.TrimSpace(os.Getenv(EnvEcho)); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s必须是布尔值: %q", EnvEcho, v)
		}
		cfg.Run.Execution.EchoCommands = b
	}
	return nil
}
