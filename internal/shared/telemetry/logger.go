package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Fields carries structured key/value pairs for a log line.
type Fields map[string]any

// Info writes an info-level log line with the given fields.
func Info(msg string, fields Fields) {
	write("info", msg, fields)
}

// Warn writes a warn-level log line with the given fields.
func Warn(msg string, fields Fields) {
	write("warn", msg, fields)
}

// Error writes an error-level log line with the given fields.
func Error(msg string, fields Fields) {
	write("error", msg, fields)
}

// Err is shorthand for an error log that carries err under the "error" key.
func Err(msg string, err error, fields Fields) {
	merged := make(Fields, len(fields)+1)
	for k, v := range fields {
		merged[k] = v
	}
	if err != nil {
		merged["error"] = err.Error()
	}
	write("error", msg, merged)
}

func write(level, msg string, fields Fields) {
	entry := make(map[string]any, len(fields)+3)
	for k, v := range fields {
		entry[k] = v
	}
	entry["ts"] = time.Now().UTC().Format(time.RFC3339)
	entry["level"] = level
	entry["msg"] = msg
	data, err := json.Marshal(entry)
	if err != nil {
		fmt.Fprintf(os.Stdout, `{"ts":"%s","level":"error","msg":"logger marshal failed","err":%q}`+"\n", time.Now().UTC().Format(time.RFC3339), err.Error())
		return
	}
	fmt.Fprintln(os.Stdout, string(data))
}
