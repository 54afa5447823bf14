package logger

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogLevel 日志级别
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

// Logger 自定义日志器
type Logger struct {
	zapLogger *zap.Logger
}

// RotationConfig 日志轮转配置
type RotationConfig struct {
	Filename   string // 日志文件路径
	MaxSize    int    // 单个日志文件的最大大小（MB）
	MaxBackups int    // 保留的旧日志文件数量
	MaxAge     int    // 保留天数
	Compress   bool   // 是否压缩旧文件
}

var defaultLogger *Logger

func init() {
	var err error
	defaultLogger, err = New(INFO)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
}

// New 创建新的日志器
func New(level LogLevel) (*Logger, error) {
	config := baseConfig(level)
	zapLogger, err := config.Build(zap.AddCallerSkip(2))
	if err != nil {
		return nil, err
	}
	return &Logger{zapLogger: zapLogger}, nil
}

// NewWithRotation 创建带文件轮转的日志器
func NewWithRotation(level LogLevel, cfg RotationConfig) (*Logger, error) {
	if cfg.MaxSize == 0 {
		cfg.MaxSize = 100
	}
	if cfg.MaxBackups == 0 {
		cfg.MaxBackups = 3
	}
	if cfg.MaxAge == 0 {
		cfg.MaxAge = 28
	}

	sink := &lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}

	zapConfig := baseConfig(level)
	encoder := zapcore.NewJSONEncoder(zapConfig.EncoderConfig)
	core := zapcore.NewCore(encoder, zapcore.AddSync(sink), zapConfig.Level)
	zapLogger := zap.New(core, zap.AddCallerSkip(2), zap.AddCaller())

	return &Logger{zapLogger: zapLogger}, nil
}

func baseConfig(level LogLevel) zap.Config {
	config := zap.NewProductionConfig()
	if level == DEBUG {
		config = zap.NewDevelopmentConfig()
	}
	config.Level = zap.NewAtomicLevelAt(zapLevel(level))

	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format("2006-01-02 15:04:05"))
	}
	config.EncoderConfig.CallerKey = "caller"
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	config.EncoderConfig.MessageKey = "message"

	return config
}

// Debug 调试日志
func (l *Logger) Debug(format string, args ...interface{}) {
	l.zapLogger.Debug(fmt.Sprintf(format, args...))
}

// Info 信息日志
func (l *Logger) Info(format string, args ...interface{}) {
	l.zapLogger.Info(fmt.Sprintf(format, args...))
}

// Warn 警告日志
func (l *Logger) Warn(format string, args ...interface{}) {
	l.zapLogger.Warn(fmt.Sprintf(format, args...))
}

// Error 错误日志
func (l *Logger) Error(format string, args ...interface{}) {
	l.zapLogger.Error(fmt.Sprintf(format, args...))
}

// Fatal 致命错误日志
func (l *Logger) Fatal(format string, args ...interface{}) {
	l.zapLogger.Fatal(fmt.Sprintf(format, args...))
}

// Sync 刷新缓冲
func (l *Logger) Sync() {
	l.zapLogger.Sync()
}

// With 附加字段
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{zapLogger: l.zapLogger.With(fields...)}
}

// SetDefaultLogger 替换默认日志器
func SetDefaultLogger(l *Logger) {
	if defaultLogger != nil {
		defaultLogger.Sync()
	}
	defaultLogger = l
}

// 全局函数

func Debug(format string, args ...interface{}) {
	defaultLogger.Debug(format, args...)
}

func Info(format string, args ...interface{}) {
	defaultLogger.Info(format, args...)
}

func Warn(format string, args ...interface{}) {
	defaultLogger.Warn(format, args...)
}

func Error(format string, args ...interface{}) {
	defaultLogger.Error(format, args...)
}

func Fatal(format string, args ...interface{}) {
	defaultLogger.Fatal(format, args...)
}

func Sync() {
	defaultLogger.Sync()
}

// ParseLogLevel 解析日志级别字符串
func ParseLogLevel(level string) LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return DEBUG
	case "info":
		return INFO
	case "warn", "warning":
		return WARN
	case "error":
		return ERROR
	case "fatal":
		return FATAL
	default:
		return INFO
	}
}

func zapLevel(level LogLevel) zapcore.Level {
	switch level {
	case DEBUG:
		return zapcore.DebugLevel
	case INFO:
		return zapcore.InfoLevel
	case WARN:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	case FATAL:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}
