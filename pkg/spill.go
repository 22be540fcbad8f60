// Package pkg provides disk-backed utilities for docvet.
package pkg

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// Spill is a generic append-only log of items of type T backed by a file.
// The scan workflow streams every verdict through one so that very large
// trees leave a replayable record without holding it in memory.
type Spill[T any] interface {
	Len() uint64
	Path() string
	Append(item T) error
	AppendBatch(items []T) error
	Range(f func(index uint64, item T) error) error
	Close() error
}

type spillImpl[T any] struct {
	path    string
	file    *os.File
	encoder *gob.Encoder
	mu      sync.Mutex
	length  uint64
}

// NewSpill creates (or truncates) the log file at path.
func NewSpill[T any](path string) (Spill[T], error) {
	// #nosec G304 - path is an internal reports-directory file, not user input
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		slog.Error("failed to open spill file", "path", path, "error", err)
		return nil, fmt.Errorf("open spill file: %w", err)
	}

	return &spillImpl[T]{
		path:    path,
		file:    file,
		encoder: gob.NewEncoder(file),
	}, nil
}

// Append implements Spill.
func (s *spillImpl[T]) Append(item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.encoder.Encode(item); err != nil {
		slog.Error("failed to encode item", "path", s.path, "index", s.length, "error", err)
		return fmt.Errorf("failed to encode item: %w", err)
	}

	s.length++

	return nil
}

// AppendBatch implements Spill.
func (s *spillImpl[T]) AppendBatch(items []T) error {
	for _, item := range items {
		if err := s.Append(item); err != nil {
			return err
		}
	}

	return nil
}

// Len implements Spill.
func (s *spillImpl[T]) Len() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.length
}

// Path implements Spill.
func (s *spillImpl[T]) Path() string {
	return s.path
}

// Range implements Spill. It reads the log back from disk through a separate
// handle, so it is safe to call after Close.
func (s *spillImpl[T]) Range(f func(index uint64, item T) error) error {
	// #nosec G304 - path was produced by NewSpill
	file, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("open spill file for read: %w", err)
	}

	defer func() { _ = file.Close() }()

	decoder := gob.NewDecoder(file)

	for index := uint64(0); ; index++ {
		var item T

		err := decoder.Decode(&item)
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return fmt.Errorf("decode item %d: %w", index, err)
		}

		if err := f(index, item); err != nil {
			return err
		}
	}
}

// Close implements Spill.
func (s *spillImpl[T]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.file != nil {
		if err := s.file.Close(); err != nil {
			slog.Error("failed to close spill file", "path", s.path, "error", err)
			return err
		}

		slog.Debug("closed spill", "path", s.path, "length", s.length)
		s.file = nil
	}

	return nil
}
