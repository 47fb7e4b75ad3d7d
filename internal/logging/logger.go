package logging

import (
	"encoding/json"
	"io"
	"log"
	"os"
	"time"
)

type Fields map[string]interface{}

var std = log.New(os.Stderr, "", 0)

// SetOutput redirects log lines, e.g. to a file while the TUI owns the
// terminal.
func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

func output(level, msg string, fields Fields) {
	line := Fields{}
	for k, v := range fields {
		line[k] = v
	}
	line["level"] = level
	line["ts"] = time.Now().UTC().Format(time.RFC3339)
	line["msg"] = msg
	b, err := json.Marshal(line)
	if err != nil {
		// fallback to plain logging
		std.Printf("%s: %s (%v)\n", level, msg, fields)
		return
	}
	std.Println(string(b))
}

// Info logs an informational message with optional fields.
func Info(msg string, fields Fields) {
	output("info", msg, fields)
}

// Warn logs a recoverable problem.
func Warn(msg string, fields Fields) {
	output("warn", msg, fields)
}

// Error logs an error message and includes the error text in the fields.
func Error(msg string, err error, fields Fields) {
	if fields == nil {
		fields = Fields{}
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	output("error", msg, fields)
}

// OpenFile appends log lines to path and returns the file for closing.
func OpenFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	SetOutput(f)
	return f, nil
}
