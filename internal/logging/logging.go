// Package logging hands out level-filtered loggers, one per domain.
//
// Messages carry their level as a bracketed prefix, e.g.
//
//	log.Printf("[ERROR] Cannot save timer state: %s\n", err.Error())
//
// and anything below the configured minimum level is dropped.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hashicorp/logutils"
)

// Domain names the subsystem a logger belongs to.
type Domain string

const (
	App       Domain = "App"
	Scheduler Domain = "Scheduler"
	Timer     Domain = "Timer"
	Store     Domain = "Store"
	Notify    Domain = "Notify"
	Quote     Domain = "Quote"
	UI        Domain = "UI"
)

// Levels in ascending order of severity.
var Levels = []logutils.LogLevel{"TRACE", "DEBUG", "INFO", "WARN", "ERROR"}

var (
	mu       sync.Mutex
	minLevel logutils.LogLevel = "INFO"
	sink     io.Writer         = os.Stderr
	logFile  *os.File
)

// Setup sets the minimum level and, if dir is not empty, mirrors all output
// into dir/prodhub.log. It may be called again to reconfigure.
func Setup(level, dir string) error {
	mu.Lock()
	defer mu.Unlock()

	minLevel = normalize(level)

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	sink = os.Stderr
	if dir == "" {
		return nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create log dir %q: %w", dir, err)
	}
	fh, err := os.OpenFile(filepath.Join(dir, "prodhub.log"), os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logFile = fh
	sink = io.MultiWriter(os.Stderr, fh)
	return nil
}

// Quiet keeps logging to the file only; used while a full screen UI owns
// the terminal.
func Quiet() {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		sink = logFile
	} else {
		sink = io.Discard
	}
}

// GetLogger returns a logger for the given domain.
func GetLogger(d Domain) *log.Logger {
	return NewLogger(d, nil)
}

// NewLogger builds a domain logger writing to w instead of the shared sink.
// A nil w means the shared sink.
func NewLogger(d Domain, w io.Writer) *log.Logger {
	mu.Lock()
	level := minLevel
	if w == nil {
		w = sink
	}
	mu.Unlock()

	filter := &logutils.LevelFilter{
		Levels:   Levels,
		MinLevel: level,
		Writer:   w,
	}
	return log.New(filter, string(d)+" ", log.Ldate|log.Ltime)
}

func normalize(level string) logutils.LogLevel {
	l := logutils.LogLevel(strings.ToUpper(strings.TrimSpace(level)))
	for _, known := range Levels {
		if l == known {
			return l
		}
	}
	return "INFO"
}
