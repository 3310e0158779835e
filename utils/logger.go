package utils

import (
	"fmt"
	"io"
	"sync"
)

// Logger writes prefixed lines to an io.Writer. A nil *Logger discards everything,
// so parsers take one unconditionally.
type Logger struct {
	io.Writer
	Prefix string

	mu sync.Mutex
}

func NewLogger(w io.Writer, prefix string) *Logger {
	return &Logger{Writer: w, Prefix: prefix}
}

func (l *Logger) Println(a ...interface{}) {
	if l != nil {
		l.mu.Lock()
		defer l.mu.Unlock()
		io.WriteString(l.Writer, l.Prefix+fmt.Sprintln(a...))
	}
}

func (l *Logger) Printf(format string, a ...interface{}) {
	if l != nil {
		l.mu.Lock()
		defer l.mu.Unlock()
		io.WriteString(l.Writer, l.Prefix+fmt.Sprintf(format, a...)+"\n")
	}
}

// WithPrefix returns a logger sharing the writer, with prefix appended.
func (l *Logger) WithPrefix(prefix string) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{Writer: lockedWriter{l}, Prefix: l.Prefix + prefix}
}

type lockedWriter struct {
	l *Logger
}

func (w lockedWriter) Write(p []byte) (int, error) {
	w.l.mu.Lock()
	defer w.l.mu.Unlock()
	return w.l.Writer.Write(p)
}
