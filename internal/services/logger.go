package services

import (
	"fmt"
	"io"
	"os"
	"sync"

	"spotify-yt-downloader/internal/shared"
)

// ConsoleLogger implementation. Lines from concurrent workers never interleave.
type ConsoleLogger struct {
	mu        sync.Mutex
	out       io.Writer
	debugMode bool
}

func NewConsoleLogger() *ConsoleLogger {
	return NewConsoleLoggerWithWriter(os.Stdout)
}

func NewConsoleLoggerWithWriter(out io.Writer) *ConsoleLogger {
	return &ConsoleLogger{out: out}
}

func (cl *ConsoleLogger) Info(message string, args ...interface{}) {
	cl.print(shared.ColorInfo.Sprintf(message, args...))
}

func (cl *ConsoleLogger) Warning(message string, args ...interface{}) {
	cl.print(shared.ColorWarning.Sprintf("⚠️ "+message, args...))
}

func (cl *ConsoleLogger) Error(message string, args ...interface{}) {
	cl.print(shared.ColorError.Sprintf("❌ "+message, args...))
}

func (cl *ConsoleLogger) Debug(message string, args ...interface{}) {
	cl.mu.Lock()
	enabled := cl.debugMode
	cl.mu.Unlock()
	if !enabled {
		return
	}
	cl.print(shared.ColorDebug.Sprintf("🐛 DEBUG: "+message, args...))
}

func (cl *ConsoleLogger) Success(message string, args ...interface{}) {
	cl.print(shared.ColorSuccess.Sprintf("✅ "+message, args...))
}

func (cl *ConsoleLogger) SetDebugMode(enabled bool) {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	cl.debugMode = enabled
}

func (cl *ConsoleLogger) print(line string) {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	fmt.Fprintln(cl.out, line)
}
