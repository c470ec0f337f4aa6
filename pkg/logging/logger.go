package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// NewJSONLogger creates a new JSON logger
func NewJSONLogger(writer io.Writer, level Level) *JSONLogger {
	return &JSONLogger{
		writer: writer,
		level:  level,
		fields: make([]Field, 0),
		mu:     &sync.Mutex{},
	}
}

// NewDefaultLogger creates a logger that writes to stderr at INFO level.
// Stdout is left for exported documents.
func NewDefaultLogger() *JSONLogger {
	return NewJSONLogger(os.Stderr, InfoLevel)
}

func mergeFields(preset, fields []Field) map[string]any {
	if len(preset)+len(fields) == 0 {
		return nil
	}
	m := make(map[string]any, len(preset)+len(fields))
	for _, f := range preset {
		m[f.Key] = f.Value
	}
	for _, f := range fields {
		m[f.Key] = f.Value
	}
	return m
}

func (l *JSONLogger) log(level Level, msg string, fields ...Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.level {
		return
	}

	entry := LogEntry{
		Time:    time.Now().Format(time.RFC3339Nano),
		Level:   level.String(),
		Message: msg,
		Fields:  mergeFields(l.fields, fields),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(l.writer, "[ERROR] Failed to marshal log entry: %v\n", err)
		return
	}
	l.writer.Write(append(data, '\n'))
}

func (l *JSONLogger) Debug(msg string, fields ...Field) { l.log(DebugLevel, msg, fields...) }
func (l *JSONLogger) Info(msg string, fields ...Field)  { l.log(InfoLevel, msg, fields...) }
func (l *JSONLogger) Warn(msg string, fields ...Field)  { l.log(WarnLevel, msg, fields...) }
func (l *JSONLogger) Error(msg string, fields ...Field) { l.log(ErrorLevel, msg, fields...) }

// With creates a child logger sharing the writer and its lock.
func (l *JSONLogger) With(fields ...Field) Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	newFields := make([]Field, len(l.fields)+len(fields))
	copy(newFields, l.fields)
	copy(newFields[len(l.fields):], fields)

	return &JSONLogger{
		writer: l.writer,
		level:  l.level,
		fields: newFields,
		mu:     l.mu,
	}
}

// SetLevel sets the minimum log level
func (l *JSONLogger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// GetLevel returns the current log level
func (l *JSONLogger) GetLevel() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// NewTextLogger creates a logger writing lines of the form
//
//	15:04:05 INFO converted warehouse grade=B nodes=17
//
// with fields sorted by key.
func NewTextLogger(writer io.Writer, level Level) *TextLogger {
	return &TextLogger{writer: writer, level: level, mu: &sync.Mutex{}}
}

func (l *TextLogger) log(level Level, msg string, fields ...Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.level {
		return
	}

	m := mergeFields(l.fields, fields)
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(time.Now().Format("15:04:05"))
	b.WriteByte(' ')
	b.WriteString(level.String())
	b.WriteByte(' ')
	b.WriteString(msg)
	for _, k := range keys {
		b.WriteByte(' ')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(textValue(m[k]))
	}
	b.WriteByte('\n')
	io.WriteString(l.writer, b.String())
}

func textValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "<nil>"
	case string:
		if x == "" || strings.ContainsAny(x, " =\"") {
			return strconv.Quote(x)
		}
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

func (l *TextLogger) Debug(msg string, fields ...Field) { l.log(DebugLevel, msg, fields...) }
func (l *TextLogger) Info(msg string, fields ...Field)  { l.log(InfoLevel, msg, fields...) }
func (l *TextLogger) Warn(msg string, fields ...Field)  { l.log(WarnLevel, msg, fields...) }
func (l *TextLogger) Error(msg string, fields ...Field) { l.log(ErrorLevel, msg, fields...) }

func (l *TextLogger) With(fields ...Field) Logger {
	l.mu.Lock()
	defer l.mu.Unlock()
	newFields := append(append([]Field(nil), l.fields...), fields...)
	return &TextLogger{writer: l.writer, level: l.level, fields: newFields, mu: l.mu}
}

func (l *TextLogger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *TextLogger) GetLevel() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// New picks a logger by format name: "json" or "text".
func New(format string, w io.Writer, level Level) (Logger, error) {
	switch strings.ToLower(format) {
	case "", "json":
		return NewJSONLogger(w, level), nil
	case "text":
		return NewTextLogger(w, level), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// Global default logger
var (
	defaultMu     sync.RWMutex
	defaultLogger Logger
	once          sync.Once
)

// DefaultLogger returns the global default logger. RETROFIT_LOG_LEVEL wins
// over LOG_LEVEL when both are set.
func DefaultLogger() Logger {
	once.Do(func() {
		level := InfoLevel
		for _, env := range []string{"LOG_LEVEL", "RETROFIT_LOG_LEVEL"} {
			if s := os.Getenv(env); s != "" {
				level = ParseLevel(s)
			}
		}
		defaultMu.Lock()
		if defaultLogger == nil {
			defaultLogger = NewJSONLogger(os.Stderr, level)
		}
		defaultMu.Unlock()
	})
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefaultLogger sets the global default logger
func SetDefaultLogger(logger Logger) {
	once.Do(func() {})
	defaultMu.Lock()
	defaultLogger = logger
	defaultMu.Unlock()
}

func Debug(msg string, fields ...Field) { DefaultLogger().Debug(msg, fields...) }
func Info(msg string, fields ...Field)  { DefaultLogger().Info(msg, fields...) }
func Warn(msg string, fields ...Field)  { DefaultLogger().Warn(msg, fields...) }

// ErrorLog logs an error-level message using the default logger.
// Named ErrorLog to avoid conflict with the Error field constructor.
func ErrorLog(msg string, fields ...Field) { DefaultLogger().Error(msg, fields...) }

// With creates a child of the default logger.
func With(fields ...Field) Logger {
	return DefaultLogger().With(fields...)
}

// StartTimer begins timing an operation
func StartTimer(logger Logger, msg string, fields ...Field) *TimedOperation {
	return &TimedOperation{
		logger: logger,
		msg:    msg,
		start:  time.Now(),
		fields: fields,
	}
}

// Elapsed reports the time since StartTimer without logging.
func (t *TimedOperation) Elapsed() time.Duration {
	return time.Since(t.start)
}

// End logs the operation at debug level with its duration and returns it.
func (t *TimedOperation) End(fields ...Field) time.Duration {
	elapsed := time.Since(t.start)
	t.logger.Debug(t.msg, t.with(elapsed, fields)...)
	return elapsed
}

// EndWithLevel logs the operation at the given level with its duration.
func (t *TimedOperation) EndWithLevel(level Level, msg string, fields ...Field) time.Duration {
	elapsed := time.Since(t.start)
	all := t.with(elapsed, fields)
	switch level {
	case DebugLevel:
		t.logger.Debug(msg, all...)
	case InfoLevel:
		t.logger.Info(msg, all...)
	case WarnLevel:
		t.logger.Warn(msg, all...)
	case ErrorLevel:
		t.logger.Error(msg, all...)
	}
	return elapsed
}

// EndError logs the operation as an error with its duration
func (t *TimedOperation) EndError(err error) time.Duration {
	elapsed := time.Since(t.start)
	t.logger.Error(t.msg, t.with(elapsed, []Field{Error(err)})...)
	return elapsed
}

func (t *TimedOperation) with(elapsed time.Duration, extra []Field) []Field {
	all := make([]Field, 0, len(t.fields)+len(extra)+1)
	all = append(all, t.fields...)
	all = append(all, extra...)
	return append(all, Latency(elapsed))
}
