package main

import (
	"fmt"
	"log"

	"gopkg.in/natefinch/lumberjack.v2"
)

// fileLogger writes the watch log to a rotating file, since the terminal is taken by the display.
type fileLogger struct {
	out *lumberjack.Logger
	l   *log.Logger
}

func newFileLogger(path string) *fileLogger {
	out := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    1, // megabytes
		MaxBackups: 2,
		MaxAge:     7, // days
	}
	return &fileLogger{out: out, l: log.New(out, "", log.LstdFlags|log.Lmicroseconds)}
}

func (f *fileLogger) Debug(msg string) {
	f.l.Print("DEBUG " + msg)
}

func (f *fileLogger) Debugf(format string, v ...any) {
	f.l.Print("DEBUG " + fmt.Sprintf(format, v...))
}

func (f *fileLogger) Info(msg string) {
	f.l.Print("INFO " + msg)
}

func (f *fileLogger) Infof(format string, v ...any) {
	f.l.Print("INFO " + fmt.Sprintf(format, v...))
}

func (f *fileLogger) Close() error {
	return f.out.Close()
}
