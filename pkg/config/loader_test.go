package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("创建测试配置文件失败: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
run:
  general:
    log_level: "debug"
    color: "never"
  project:
    root: "/srv/project"
    markers: ["Cargo.toml"]
  execution:
    echo_commands: true
    dry_run: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}
	if cfg.GetLogLevel() != "debug" {
		t.Errorf("期望log_level为debug，实际为%s", cfg.GetLogLevel())
	}
	if cfg.Run.General.Color != "never" {
		t.Errorf("期望color为never，实际为%s", cfg.Run.General.Color)
	}
	if cfg.GetProjectRoot() != "/srv/project" {
		t.Errorf("期望root为/srv/project，实际为%s", cfg.GetProjectRoot())
	}
	if m := cfg.GetMarkers(); len(m) != 1 || m[0] != "Cargo.toml" {
		t.Errorf("期望markers为[Cargo.toml]，实际为%v", m)
	}
	if !cfg.Run.Execution.EchoCommands || !cfg.Run.Execution.DryRun {
		t.Errorf("期望echo_commands与dry_run为true")
	}
}

func TestLoad_WithDefaults(t *testing.T) {
	path := writeConfig(t, "run: {}\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}
	if cfg.GetLogLevel() != "warn" {
		t.Errorf("期望默认log_level为warn，实际为%s", cfg.GetLogLevel())
	}
	if cfg.Run.General.Color != "auto" {
		t.Errorf("期望默认color为auto，实际为%s", cfg.Run.General.Color)
	}
	if len(cfg.GetMarkers()) != len(DefaultMarkers) {
		t.Errorf("期望默认markers为%v，实际为%v", DefaultMarkers, cfg.GetMarkers())
	}
}

func TestLoad_MissingDefaultFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("默认配置文件不存在时应返回默认配置: %v", err)
	}
	if cfg.GetLogLevel() != "warn" {
		t.Errorf("期望默认log_level为warn，实际为%s", cfg.GetLogLevel())
	}
}

func TestLoad_DefaultFileAtProjectRoot(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "crates", "core")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatalf("创建子目录失败: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "Cargo.toml"), nil, 0644); err != nil {
		t.Fatalf("创建根目录标记失败: %v", err)
	}
	content := "run:\n  general:\n    log_level: debug\n"
	if err := os.WriteFile(filepath.Join(root, DefaultFile), []byte(content), 0644); err != nil {
		t.Fatalf("创建默认配置文件失败: %v", err)
	}
	t.Chdir(sub)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}
	if cfg.GetLogLevel() != "debug" {
		t.Errorf("期望读取项目根目录的配置，log_level应为debug，实际为%s", cfg.GetLogLevel())
	}
}

func TestDefaultPath(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("创建子目录失败: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "flake.nix"), nil, 0644); err != nil {
		t.Fatalf("创建根目录标记失败: %v", err)
	}

	want := filepath.Join(root, DefaultFile)
	if got := DefaultPath(nested); got != want {
		t.Errorf("期望%s，实际为%s", want, got)
	}

	// 子目录自带配置文件时优先使用最近的一个
	if err := os.WriteFile(filepath.Join(nested, DefaultFile), []byte("run: {}\n"), 0644); err != nil {
		t.Fatalf("创建配置文件失败: %v", err)
	}
	want = filepath.Join(nested, DefaultFile)
	if got := DefaultPath(nested); got != want {
		t.Errorf("期望%s，实际为%s", want, got)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("显式指定的配置文件不存在时应返回错误")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "run: [unclosed\n")
	if _, err := Load(path); err == nil {
		t.Fatal("非法YAML应返回错误")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
run:
  general:
    log_level: "error"
`)
	t.Setenv(EnvLogLevel, "info")
	t.Setenv(EnvRoot, "/from/env")
	t.Setenv(EnvDryRun, "true")
	t.Setenv(EnvEcho, "1")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}
	if cfg.GetLogLevel() != "info" {
		t.Errorf("期望环境变量覆盖log_level为info，实际为%s", cfg.GetLogLevel())
	}
	if cfg.GetProjectRoot() != "/from/env" {
		t.Errorf("期望环境变量覆盖root，实际为%s", cfg.GetProjectRoot())
	}
	if !cfg.Run.Execution.DryRun || !cfg.Run.Execution.EchoCommands {
		t.Errorf("期望环境变量开启dry_run与echo_commands")
	}
}

func TestLoad_InvalidEnvBool(t *testing.T) {
	path := writeConfig(t, "run: {}\n")
	t.Setenv(EnvDryRun, "sometimes")
	if _, err := Load(path); err == nil {
		t.Fatal("非法布尔环境变量应返回错误")
	}
}
