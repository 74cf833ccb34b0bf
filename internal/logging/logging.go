// Package logging wires a logrus.Logger with console and optional file
// sinks (C13). Grounded on the teacher's pkg/log + logrus.Entry-threaded
// design: every subsystem takes a *logrus.Entry pre-populated with a
// "component" field, mirroring the teacher's OSCommand.Log embedding.
package logging

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

// Options configures the root logger.
type Options struct {
	ConsoleLevel int // 0-6, mapped onto logrus.Level
	FileLevel    int // falls back to ConsoleLevel if <0
	FilePath     string
}

// levelFromVerbosity maps the 0-6 CLI verbosity scale onto logrus levels,
// mirroring the --log-level/--file-log-level flags in SPEC_FULL.md §6.
func levelFromVerbosity(v int) logrus.Level {
	switch {
	case v <= 0:
		return logrus.PanicLevel
	case v == 1:
		return logrus.FatalLevel
	case v == 2:
		return logrus.ErrorLevel
	case v == 3:
		return logrus.WarnLevel
	case v == 4:
		return logrus.InfoLevel
	case v == 5:
		return logrus.DebugLevel
	default:
		return logrus.TraceLevel
	}
}

// consoleFormatter colors level prefixes the way the teacher's terminal
// output does, using fatih/color.
type consoleFormatter struct{}

func (f *consoleFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var c *color.Color
	switch entry.Level {
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		c = color.New(color.FgRed)
	case logrus.WarnLevel:
		c = color.New(color.FgYellow)
	case logrus.DebugLevel, logrus.TraceLevel:
		c = color.New(color.FgCyan)
	default:
		c = color.New(color.FgWhite)
	}

	prefix := c.Sprintf("[%s]", entry.Level.String())
	line := prefix + " " + entry.Message
	if component, ok := entry.Data["component"]; ok {
		line = prefix + " " + color.New(color.FgHiBlack).Sprintf("(%v)", component) + " " + entry.Message
	}
	return []byte(line + "\n"), nil
}

// New constructs the root logger with a console hook and, if FilePath is
// set, a plain (non-colored) file hook.
func New(opts Options) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&consoleFormatter{})
	logger.SetLevel(levelFromVerbosity(opts.ConsoleLevel))

	if opts.FilePath == "" {
		return logger, nil
	}

	file, err := os.OpenFile(opts.FilePath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	fileLevel := opts.FileLevel
	if fileLevel < 0 {
		fileLevel = opts.ConsoleLevel
	}

	logger.AddHook(&fileHook{
		writer:    file,
		level:     levelFromVerbosity(fileLevel),
		formatter: &logrus.TextFormatter{DisableColors: true, FullTimestamp: true},
	})

	return logger, nil
}

// fileHook writes plain formatted lines to a file, independent of the
// console sink's color formatter and level.
type fileHook struct {
	writer    io.Writer
	level     logrus.Level
	formatter logrus.Formatter
}

func (h *fileHook) Levels() []logrus.Level {
	return logrus.AllLevels[:h.level+1]
}

func (h *fileHook) Fire(entry *logrus.Entry) error {
	line, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = h.writer.Write(line)
	return err
}

// Component returns a *logrus.Entry pre-populated with a "component" field,
// mirroring the teacher's per-subsystem Log embedding.
func Component(logger *logrus.Logger, name string) *logrus.Entry {
	return logger.WithField("component", name)
}
