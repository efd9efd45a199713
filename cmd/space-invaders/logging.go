package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/yR-DEV/space-invaders/config"
)

const (
	logDir      = "logs"
	logFileName = "space-invaders.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging returns a no-op logger unless debug is set
// The terminal owns stdout and stderr while the game runs, so logs only ever go to a file
func setupLogging(debug bool, cfg config.LoggingConfig) (*zap.Logger, error) {
	if !debug {
		return zap.NewNop(), nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	logPath := filepath.Join(logDir, logFileName)
	if err := rotateLog(logPath, time.Now()); err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg, logPath)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return logger, nil
}

// rotateLog moves an oversized log aside under a timestamped name
func rotateLog(logPath string, now time.Time) error {
	info, err := os.Stat(logPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat log: %w", err)
	}
	if info.Size() <= maxLogSize {
		return nil
	}

	base := strings.TrimSuffix(logPath, filepath.Ext(logPath))
	rotated := fmt.Sprintf("%s-%s.log", base, now.Format("20060102-150405"))
	if err := os.Rename(logPath, rotated); err != nil {
		return fmt.Errorf("rotate log: %w", err)
	}
	return nil
}

func newLogger(cfg config.LoggingConfig, path string) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.OutputPaths = []string{path}
	zapCfg.ErrorOutputPaths = []string{path}

	return zapCfg.Build()
}
