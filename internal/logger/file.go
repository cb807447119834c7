package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/harrison/rob/internal/models"
)

// FileLogger appends an audit trail of recorded answers and judgements to a
// daily log file (rob-YYYYMMDD.log) and keeps a latest.log symlink pointing
// at it. It is thread-safe and implements Logger.
type FileLogger struct {
	logDir   string
	file     *os.File
	path     string
	logLevel string
	mu       sync.Mutex
}

// NewFileLogger opens (or creates) today's log file in logDir.
func NewFileLogger(logDir, logLevel string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	path := filepath.Join(logDir, fmt.Sprintf("rob-%s.log", time.Now().Format("20060102")))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	symlinkPath := filepath.Join(logDir, "latest.log")
	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}
	if err := os.Symlink(filepath.Base(path), symlinkPath); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create symlink: %w", err)
	}

	return &FileLogger{
		logDir:   logDir,
		file:     file,
		path:     path,
		logLevel: normalizeLogLevel(logLevel),
	}, nil
}

// Path returns the log file being written.
func (fl *FileLogger) Path() string {
	return fl.path
}

// LogDebug logs a debug-level message.
func (fl *FileLogger) LogDebug(message string) {
	fl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) {
	fl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (fl *FileLogger) LogWarn(message string) {
	fl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (fl *FileLogger) LogError(message string) {
	fl.logWithLevel("ERROR", message)
}

// LogDomainJudgement logs the verdict of one domain at DEBUG level.
func (fl *FileLogger) LogDomainJudgement(d *models.Domain) {
	fl.logWithLevel("DEBUG", fmt.Sprintf("%s %s: %s", d.ShortName(), d.Name, d.Judgement()))
}

// LogFrameworkJudgement logs the aggregated verdict, with every domain
// verdict, at INFO level.
func (fl *FileLogger) LogFrameworkJudgement(fw *models.Framework) {
	parts := make([]string, 0, len(fw.Domains))
	for _, d := range fw.Domains {
		if models.HasJudgement(d.Kind) {
			parts = append(parts, fmt.Sprintf("%s=%s", d.ShortName(), d.Judgement().Symbol()))
		}
	}
	fl.logWithLevel("INFO", fmt.Sprintf("judgement manuscript=%q assessor=%q overall=%q domains=[%s]",
		fw.Manuscript, fw.Assessor, fw.Judgement().String(), strings.Join(parts, " ")))
}

// LogRecorded logs a recorded answer at INFO level.
func (fl *FileLogger) LogRecorded(questionID, answer string) {
	fl.logWithLevel("INFO", fmt.Sprintf("recorded question=%s answer=%q", questionID, answer))
}

func (fl *FileLogger) logWithLevel(level, message string) {
	if logLevelToInt(strings.ToLower(level)) < logLevelToInt(fl.logLevel) {
		return
	}

	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.file == nil {
		return
	}
	fmt.Fprintf(fl.file, "%s [%s] %s\n", time.Now().Format(time.RFC3339), level, message)
}

// Close closes the log file.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.file == nil {
		return nil
	}
	err := fl.file.Close()
	fl.file = nil
	return err
}

// MultiLogger fans every call out to several loggers.
type MultiLogger []Logger

func (m MultiLogger) LogDebug(message string) {
	for _, l := range m {
		l.LogDebug(message)
	}
}

func (m MultiLogger) LogInfo(message string) {
	for _, l := range m {
		l.LogInfo(message)
	}
}

func (m MultiLogger) LogWarn(message string) {
	for _, l := range m {
		l.LogWarn(message)
	}
}

func (m MultiLogger) LogError(message string) {
	for _, l := range m {
		l.LogError(message)
	}
}

func (m MultiLogger) LogDomainJudgement(d *models.Domain) {
	for _, l := range m {
		l.LogDomainJudgement(d)
	}
}

func (m MultiLogger) LogFrameworkJudgement(fw *models.Framework) {
	for _, l := range m {
		l.LogFrameworkJudgement(fw)
	}
}

func (m MultiLogger) LogRecorded(questionID, answer string) {
	for _, l := range m {
		l.LogRecorded(questionID, answer)
	}
}

var (
	_ Logger = (*FileLogger)(nil)
	_ Logger = MultiLogger(nil)
)
