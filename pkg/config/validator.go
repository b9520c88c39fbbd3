package config

import (
	"fmt"
	"strings"
)

// Validate 校验配置合法性
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("配置不能为空")
	}

	validLevels := map[string]bool{
		"debug":   true,
		"info":    true,
		"warn":    true,
		"warning": true,
		"error":   true,
	}
	if lvl := strings.ToLower(cfg.Run.General.LogLevel); lvl != "" && !validLevels[lvl] {
		return fmt.Errorf("general.log_level必须是debug/info/warn/error之一")
	}

	switch cfg.Run.General.Color {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("general.color必须是auto/always/never之一")
	}

	for i, m := range cfg.Run.Project.Markers {
		if strings.TrimSpace(m) == "" {
			return fmt.Errorf("project.markers[%d]不能为空", i)
		}
	}

	return nil
}
