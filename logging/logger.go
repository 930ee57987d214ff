package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Logger = logrus.New()

// InitLogger configures the shared logger: human readable output on stdout
// plus a size-rotated log file. systemName tags every entry so the backend
// and the subscriber worker can share one log directory.
func InitLogger(systemName string) {
	if _, err := os.Stat("logs"); os.IsNotExist(err) {
		if err := os.Mkdir("logs", 0700); err != nil {
			logrus.Fatalf("Failed to create log directory: %v", err)
		}
	}

	logFile := &lumberjack.Logger{
		Filename:   "logs/" + systemName + ".log",
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}

	Logger.SetOutput(io.MultiWriter(os.Stdout, logFile))
	Logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	Logger.SetLevel(logrus.InfoLevel)
	if os.Getenv("APP_ENV") != "production" {
		Logger.SetLevel(logrus.DebugLevel)
	}
}
