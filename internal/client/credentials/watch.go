package credentials

import (
	"context"
	"maps"
	"time"

	"github.com/dmitrijs2005/taskdesk/internal/common"
)

// Change describes a credential key modified by another process. Absent
// values are reported as empty strings.
type Change struct {
	Key      string
	OldValue string
	NewValue string
}

type watcher struct {
	last map[string]string
}

const changeBuffer = 16

// Watch polls the store every interval and emits a Change for each
// credential key whose value differs from the previous observation.
// Writes made through s itself are not reported. The channel is closed
// when ctx is done.
func (s *Store) Watch(ctx context.Context, interval time.Duration) <-chan Change {
	out := make(chan Change, changeBuffer)

	w := &watcher{last: map[string]string{}}

	s.mu.Lock()
	if snap, err := s.repo.Snapshot(ctx, common.CredentialKeys...); err != nil {
		s.log.Warn(ctx, "initial credential snapshot failed", "error", err)
	} else {
		w.last = snap
	}
	s.watchers[w] = struct{}{}
	s.mu.Unlock()

	go func() {
		defer close(out)
		defer func() {
			s.mu.Lock()
			delete(s.watchers, w)
			s.mu.Unlock()
		}()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				for _, ch := range s.poll(ctx, w) {
					select {
					case out <- ch:
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}()

	return out
}

func (s *Store) poll(ctx context.Context, w *watcher) []Change {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.repo.Snapshot(ctx, common.CredentialKeys...)
	if err != nil {
		if ctx.Err() == nil {
			s.log.Warn(ctx, "credential poll failed", "error", err)
		}
		return nil
	}

	changes := diff(w.last, snap)
	w.last = snap
	return changes
}

// observeLocked records values written by s as already seen by every
// watcher. s.mu must be held.
func (s *Store) observeLocked(snap map[string]string) {
	for w := range s.watchers {
		w.last = maps.Clone(snap)
	}
}

func diff(prev, next map[string]string) []Change {
	var changes []Change
	for _, k := range common.CredentialKeys {
		if prev[k] != next[k] || hasKey(prev, k) != hasKey(next, k) {
			changes = append(changes, Change{Key: k, OldValue: prev[k], NewValue: next[k]})
		}
	}
	return changes
}

func hasKey(m map[string]string, k string) bool {
	_, ok := m[k]
	return ok
}
