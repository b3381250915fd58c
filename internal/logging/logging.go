// Package logging points the standard logger and gin's request log at stderr
// and, when configured, a size-rotated log file.
package logging

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mrlokans/mushaf/internal/config"
)

// Setup redirects log output. The returned closer flushes and closes the log
// file; it is a no-op when no file is configured.
func Setup(cfg config.Logging) (io.Closer, error) {
	if cfg.File == "" {
		return nopCloser{}, nil
	}

	if dir := filepath.Dir(cfg.File); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	fileLogger := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}

	writer := io.MultiWriter(os.Stderr, fileLogger)
	log.SetOutput(writer)
	gin.DefaultWriter = io.MultiWriter(os.Stdout, fileLogger)
	gin.DefaultErrorWriter = writer

	log.Printf("Logging to %s (max %d MB, %d backups)", cfg.File, cfg.MaxSizeMB, cfg.MaxBackups)
	return fileLogger, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
