package config

// DefaultFile 默认配置文件名（位于项目根目录）
const DefaultFile = ".run.yaml"

// DefaultMarkers 项目根目录标记文件
var DefaultMarkers = []string{"flake.nix", "Cargo.toml", ".git"}

// Config 运行器配置（对外导出）
type Config struct {
	Run struct {
		General struct {
			LogLevel string `yaml:"log_level"`
			Color    string `yaml:"color"`
		} `yaml:"general"`
		Project struct {
			Root    string   `yaml:"root"`
			Markers []string `yaml:"markers"`
		} `yaml:"project"`
		Execution struct {
			EchoCommands bool `yaml:"echo_commands"`
			DryRun       bool `yaml:"dry_run"`
		} `yaml:"execution"`
	} `yaml:"run"`
}

// Default 返回填充默认值的配置
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// GetLogLevel 获取日志级别
func (c *Config) GetLogLevel() string {
	return c.Run.General.LogLevel
}

// GetProjectRoot 获取显式配置的项目根目录（可能为空）
func (c *Config) GetProjectRoot() string {
	return c.Run.Project.Root
}

// GetMarkers 获取根目录标记文件
func (c *Config) GetMarkers() []string {
	if len(c.Run.Project.Markers) == 0 {
		return DefaultMarkers
	}
	return c.Run.Project.Markers
}

// ApplyDefaults 应用默认值
func (c *Config) ApplyDefaults() {
	if c.Run.General.LogLevel == "" {
		c.Run.General.LogLevel = "warn"
	}
	if c.Run.General.Color == "" {
		c.Run.General.Color = "auto"
	}
	if len(c.Run.Project.Markers) == 0 {
		c.Run.Project.Markers = append([]string(nil), DefaultMarkers...)
	}
}
