package logging

import (
	"errors"
	"io"
	"os"

	"patient-records/config"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/writer"
)

// Logger owns the process logger and the files it writes to.
type Logger struct {
	*logrus.Logger
	files []*os.File
}

var infoLevels = []logrus.Level{
	logrus.PanicLevel,
	logrus.FatalLevel,
	logrus.ErrorLevel,
	logrus.WarnLevel,
	logrus.InfoLevel,
	logrus.DebugLevel,
}

var errorLevels = []logrus.Level{
	logrus.PanicLevel,
	logrus.FatalLevel,
	logrus.ErrorLevel,
}

// New opens a JSON logger carrying caller and timestamp on every line. Info
// and error lines go to their own files when configured, otherwise to stderr.
func New(cfg config.LogConfig) (*Logger, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{logrus.FieldKeyTime: "timestamp"},
	})
	log.SetReportCaller(true)
	log.SetLevel(level)

	l := &Logger{Logger: log}
	if cfg.InfoFile == "" && cfg.ErrorFile == "" {
		log.SetOutput(os.Stderr)
		return l, nil
	}

	log.SetOutput(io.Discard)
	if cfg.InfoFile != "" {
		f, err := l.open(cfg.InfoFile)
		if err != nil {
			return nil, err
		}
		log.AddHook(&writer.Hook{Writer: f, LogLevels: infoLevels})
	}
	if cfg.ErrorFile != "" {
		f, err := l.open(cfg.ErrorFile)
		if err != nil {
			l.Close()
			return nil, err
		}
		log.AddHook(&writer.Hook{Writer: f, LogLevels: errorLevels})
	}
	return l, nil
}

func (l *Logger) open(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	l.files = append(l.files, f)
	return f, nil
}

// Close flushes and closes the log files.
func (l *Logger) Close() error {
	var errs []error
	for _, f := range l.files {
		if err := f.Sync(); err != nil {
			errs = append(errs, err)
		}
		if err := f.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	l.files = nil
	return errors.Join(errs...)
}
