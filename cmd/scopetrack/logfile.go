package main

import (
	"io"
	"os"
	"path/filepath"
	"sync"
)

const (
	maxLogSizeBytes  = 6 * 1024 * 1024
	keepLogSizeBytes = 5 * 1024 * 1024
)

// logFile is an append-only log file that, once it grows past maxSize, keeps
// only its newest keepSize bytes.
type logFile struct {
	mu       sync.Mutex
	file     *os.File
	maxSize  int64
	keepSize int64
}

func openLogFile(path string, maxSize, keepSize int64) (*logFile, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	lf := &logFile{file: file, maxSize: maxSize, keepSize: keepSize}
	if err := lf.trim(); err != nil {
		file.Close()
		return nil, err
	}
	return lf, nil
}

func (l *logFile) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	n, err := l.file.Write(p)
	if err != nil {
		return n, err
	}
	return n, l.trim()
}

func (l *logFile) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}

func (l *logFile) trim() error {
	info, err := l.file.Stat()
	if err != nil {
		return err
	}
	size := info.Size()
	if size <= l.maxSize {
		return nil
	}

	buf := make([]byte, l.keepSize)
	n, err := l.file.ReadAt(buf, size-l.keepSize)
	if err != nil && err != io.EOF {
		return err
	}
	if err := l.file.Truncate(0); err != nil {
		return err
	}
	// O_APPEND writes land at the new end of file after the truncate.
	_, err = l.file.Write(buf[:n])
	return err
}
