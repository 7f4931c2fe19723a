// Package debug writes the application logs. Everything goes to app.log,
// errors are also written to error.log. Until Init is called all logging
// is discarded, so tests and the cli stay quiet.
package debug

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const appLogFile = "app.log"
const errorLogFile = "error.log"

var (
	mu     sync.Mutex
	logger = zap.NewNop().Sugar()
	files  []*os.File
)

// ParseLevel maps a config value to a log level, defaulting to info.
func ParseLevel(name string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(name)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// Init starts logging into dir at the given minimum level.
// Calling it again replaces the previous logger.
func Init(dir string, level zapcore.Level) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	appLog, err := openLog(filepath.Join(dir, appLogFile))
	if err != nil {
		return err
	}

	errLog, err := openLog(filepath.Join(dir, errorLogFile))
	if err != nil {
		appLog.Close()
		return err
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	enc := zapcore.NewJSONEncoder(encCfg)

	core := zapcore.NewTee(
		zapcore.NewCore(enc, zapcore.AddSync(appLog), level),
		zapcore.NewCore(enc, zapcore.AddSync(errLog), zapcore.ErrorLevel),
	)

	mu.Lock()
	old := files
	logger = zap.New(core).Sugar()
	files = []*os.File{appLog, errLog}
	mu.Unlock()

	closeFiles(old)
	return nil
}

// Close flushes and closes the log files. Logging is discarded afterwards.
func Close() error {
	mu.Lock()
	l := logger
	old := files
	logger = zap.NewNop().Sugar()
	files = nil
	mu.Unlock()

	// syncing a regular file doesn't fail in practice; closing does report it
	_ = l.Sync()
	return closeFiles(old)
}

func LogInfo(args ...any) {
	current().Infoln(args...)
}

func LogDebug(args ...any) {
	current().Debugln(args...)
}

func LogWarn(args ...any) {
	current().Warnln(args...)
}

func LogErr(args ...any) {
	current().Errorln(args...)
}

func current() *zap.SugaredLogger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

func openLog(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
}

func closeFiles(list []*os.File) error {
	var errs []error
	for _, f := range list {
		errs = append(errs, f.Close())
	}
	return errors.Join(errs...)
}
