package blob

import (
	"context"
	"time"
)

// SaveObserver receives timing for snapshot writes.
type SaveObserver interface {
	ObserveSnapshotSave(key string, duration time.Duration)
}

// Instrumented decorates a Store so snapshot writes report their duration.
type Instrumented struct {
	next     Store
	observer SaveObserver
}

// NewInstrumented wraps next; a nil observer passes writes through untimed.
func NewInstrumented(next Store, observer SaveObserver) *Instrumented {
	return &Instrumented{next: next, observer: observer}
}

func (s *Instrumented) Get(ctx context.Context, key string) ([]byte, error) {
	return s.next.Get(ctx, key)
}

func (s *Instrumented) Set(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	err := s.next.Set(ctx, key, value)
	if s.observer != nil {
		s.observer.ObserveSnapshotSave(key, time.Since(start))
	}
	return err
}

func (s *Instrumented) Delete(ctx context.Context, key string) error {
	return s.next.Delete(ctx, key)
}
