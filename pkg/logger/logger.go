package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// Log 全局日志实例，未调用 InitLogger 时输出到标准输出
var Log = newDefault()

// CustomFormatter 自定义日志格式
type CustomFormatter struct{}

// Format 实现 logrus.Formatter 接口
func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var fileLine string
	if entry.HasCaller() {
		fileName := filepath.Base(entry.Caller.File)
		fileLine = fmt.Sprintf("%s:%d", fileName, entry.Caller.Line)
	}

	// 对齐级别长度，例如 INFO, WARN, ERRO
	level := strings.ToUpper(entry.Level.String())
	if len(level) > 4 {
		level = level[:4]
	}

	timeStr := entry.Time.Format("2006-01-02 15:04:05")

	// [TIME] [LEVEL] [FILE:LINE] MSG key=value...
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] [%s] [%s] %s", timeStr, level, fileLine, entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&sb, " %s=%v", k, entry.Data[k])
	}
	sb.WriteByte('\n')

	return []byte(sb.String()), nil
}

func newDefault() *logrus.Logger {
	l := logrus.New()
	l.SetReportCaller(true)
	l.SetFormatter(&CustomFormatter{})
	l.SetOutput(os.Stdout)
	return l
}

// InitLogger 初始化日志
func InitLogger(levelStr string, filePath string) error {
	l := newDefault()

	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel // 默认级别
	}
	l.SetLevel(level)

	// 同时输出到控制台和文件
	writers := []io.Writer{os.Stdout}
	if filePath != "" {
		logDir := filepath.Dir(filePath)
		if logDir != "." {
			if err := os.MkdirAll(logDir, 0o755); err != nil {
				return fmt.Errorf("failed to create log directory: %w", err)
			}
		}

		file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			return err
		}
		writers = append(writers, file)
	}
	l.SetOutput(io.MultiWriter(writers...))

	Log = l
	return nil
}
