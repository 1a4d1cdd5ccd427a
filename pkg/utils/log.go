package utils

import (
	"io"
	"os"

	"github.com/infotraining/quote_syncer/pkg/xerror"

	filename "github.com/keepeye/logrus-filename"
	log "github.com/sirupsen/logrus"
	prefixed "github.com/t-tomalak/logrus-prefixed-formatter"
	"gopkg.in/natefinch/lumberjack.v2"
)

type LogOptions struct {
	Level        string
	Filename     string
	AlsoToStderr bool
	// Fields are stamped on every entry, e.g. the service name.
	Fields log.Fields
}

func InitLog(opts LogOptions) error {
	return initLogger(log.StandardLogger(), opts)
}

func initLogger(logger *log.Logger, opts LogOptions) error {
	if opts.Level == "" {
		opts.Level = "info"
	}
	level, err := log.ParseLevel(opts.Level)
	if err != nil {
		return xerror.Wrapf(err, xerror.Config, "parse log level %s failed", opts.Level)
	}
	logger.SetLevel(level)
	logger.SetFormatter(&prefixed.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
		ForceFormatting: true,
	})

	if len(opts.Fields) > 0 {
		logger.AddHook(NewFieldHook(opts.Fields))
	}

	// log.SetReportCaller(true), caller by filename
	filenameHook := filename.NewHook()
	filenameHook.Field = "line"
	logger.AddHook(filenameHook)

	if opts.Filename == "" {
		logger.SetOutput(os.Stdout)
		return nil
	}

	// TODO: Add write permission check
	output := &lumberjack.Logger{
		Filename:   opts.Filename,
		MaxSize:    1024, // 1GB
		MaxAge:     7,
		MaxBackups: 30,
		LocalTime:  true,
		Compress:   false,
	}
	if opts.AlsoToStderr {
		logger.SetOutput(io.MultiWriter(output, os.Stderr))
	} else {
		logger.SetOutput(output)
	}
	return nil
}
