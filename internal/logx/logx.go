// Package logx is the category logger of the command line tools. Library
// packages do not log.
package logx

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
)

// Options select where log lines go. An empty File logs to stderr.
type Options struct {
	File       string
	MaxSizeMB  int
	MaxAgeDays int
	Debug      bool
}

var (
	mu     sync.RWMutex
	logger = log.New(os.Stderr, "", log.Ldate|log.Ltime|log.Lmicroseconds)
	debug  bool
	color  = true
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup configures the package logger. Closing the returned closer releases
// the log file, if any.
func Setup(opts Options) (io.Closer, error) {
	if opts.File == "" {
		set(os.Stderr, opts.Debug, true)

		return nopCloser{}, nil
	}

	err := os.MkdirAll(filepath.Dir(opts.File), 0o755)
	if err != nil {
		return nil, err
	}

	lj := &lumberjack.Logger{
		Filename: opts.File,
		MaxSize:  opts.MaxSizeMB,  // megabytes
		MaxAge:   opts.MaxAgeDays, // days
	}

	set(lj, opts.Debug, false)

	return lj, nil
}

// SetOutput sends uncolored log lines to w.
func SetOutput(w io.Writer, enableDebug bool) {
	set(w, enableDebug, false)
}

func set(w io.Writer, enableDebug, enableColor bool) {
	mu.Lock()
	defer mu.Unlock()

	logger = log.New(w, "", log.Ldate|log.Ltime|log.Lmicroseconds)
	debug = enableDebug
	color = enableColor
}

func write(level, levelColor, category string, content []interface{}) {
	mu.RLock()
	defer mu.RUnlock()

	message := fmt.Sprint(content...)

	if color {
		logger.Printf("%s[%s][%s]%s: %s", levelColor, level, category, ColorReset, message)

		return
	}

	logger.Printf("[%s][%s]: %s", level, category, message)
}

func Info(category string, content ...interface{}) {
	write("INFO", ColorGreen, category, content)
}

func Error(category string, content ...interface{}) {
	write("ERROR", ColorRed, category, content)
}

func Warn(category string, content ...interface{}) {
	write("WARN", ColorYellow, category, content)
}

// Debug is dropped unless debug output was enabled.
func Debug(category string, content ...interface{}) {
	mu.RLock()
	enabled := debug
	mu.RUnlock()

	if !enabled {
		return
	}

	write("DEBUG", ColorBlue, category, content)
}
