package storage

import (
	"io"

	"github.com/charmbracelet/log"
)

var logger = log.WithPrefix("storage")

// SetLogger routes storage logging through l, so the caller's level applies.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.Default()
	}
	logger = l.WithPrefix("storage")
}

// Backend is a KV that holds resources until it is closed.
type Backend interface {
	KV
	io.Closer
	Path() string
}

// Connect opens the config backend for path. MemoryPath gets a Memory KV
// that keeps nothing; any other path is a SQLite file.
func Connect(path string) (Backend, error) {
	if path == MemoryPath {
		logger.Debug("using in-memory store")
		return NewMemory(), nil
	}
	return Open(path)
}
