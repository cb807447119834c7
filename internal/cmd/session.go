package cmd

import (
	"fmt"

	"github.com/harrison/rob/internal/config"
	"github.com/harrison/rob/internal/logger"
	"github.com/spf13/cobra"
)

// session is the configuration and logging shared by one command run.
type session struct {
	cfg     *config.Config
	log     logger.Logger
	fileLog *logger.FileLogger
}

// newSession resolves the rob home, loads its configuration, applies the
// persistent flags and opens the loggers. Console logs go to stderr so they
// never mix with command output.
func newSession(cmd *cobra.Command) (*session, error) {
	home, err := config.GetRobHome()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(home)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	var logLevelPtr, assessorPtr *string
	if cmd.Flags().Changed("log-level") {
		v, _ := cmd.Flags().GetString("log-level")
		logLevelPtr = &v
	}
	if cmd.Flags().Changed("assessor") {
		v, _ := cmd.Flags().GetString("assessor")
		assessorPtr = &v
	}
	cfg.MergeWithFlags(logLevelPtr, assessorPtr)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	console := logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	s := &session{cfg: cfg, log: console}

	if cfg.AuditLog {
		fileLog, err := logger.NewFileLogger(cfg.LogDir, cfg.LogLevel)
		if err != nil {
			console.LogWarn(fmt.Sprintf("audit log disabled: %v", err))
		} else {
			s.fileLog = fileLog
			s.log = logger.MultiLogger{console, fileLog}
		}
	}

	return s, nil
}

// Close flushes and closes the audit log.
func (s *session) Close() {
	if s.fileLog != nil {
		s.fileLog.Close()
	}
}
