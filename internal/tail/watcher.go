// Package tail follows the persisted playback state and emits events as it
// changes, for the follow-mode CLI output.
package tail

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/voxfeld/reel/internal/playback"
)

// EventType represents the type of playback event.
type EventType int

const (
	EventSessionChange EventType = iota
	EventAudioChange
	EventSubtitleChange
	EventIntroAvailable
	EventStopped
)

// Event represents a playback state change.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Previous  *playback.Snapshot
	Current   *playback.Snapshot
}

// Watcher follows the state file for changes and emits events. File
// notifications drive it; a polling ticker backstops filesystems where
// notifications are unreliable.
type Watcher struct {
	storage  *playback.StateStorage
	interval time.Duration
	events   chan Event
	done     chan struct{}
	stopOnce sync.Once
}

// NewWatcher creates a watcher over the given state storage.
func NewWatcher(storage *playback.StateStorage, interval time.Duration) *Watcher {
	if interval == 0 {
		interval = time.Second
	}
	return &Watcher{
		storage:  storage,
		interval: interval,
		events:   make(chan Event, 16),
		done:     make(chan struct{}),
	}
}

// Events returns the channel of playback events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start begins following the state file. It blocks until the context is
// cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	defer close(w.events)

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	// Watch the directory: the state file is replaced by rename, which
	// would invalidate a watch on the file itself.
	if err := fsw.Add(filepath.Dir(w.storage.Path())); err != nil {
		return err
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	prev := w.load()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.done:
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if ev.Name != w.storage.Path() {
				continue
			}
			prev = w.emitDiff(prev)
		case _, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
		case <-ticker.C:
			prev = w.emitDiff(prev)
		}
	}
}

// Stop stops the watcher. Safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
	})
}

func (w *Watcher) load() *playback.Snapshot {
	snap, err := w.storage.Load()
	if err != nil {
		return nil
	}
	return snap
}

func (w *Watcher) emitDiff(prev *playback.Snapshot) *playback.Snapshot {
	curr := w.load()
	for _, e := range diffSnapshots(prev, curr) {
		select {
		case w.events <- e:
		default:
			// Drop event if channel is full
		}
	}
	if curr == nil {
		return prev
	}
	return curr
}

// diffSnapshots compares two snapshots and returns detected events.
func diffSnapshots(prev, curr *playback.Snapshot) []Event {
	if curr == nil {
		return nil
	}

	now := time.Now()
	var events []Event

	// First observation
	if prev == nil {
		if curr.Session != nil {
			events = append(events, Event{Type: EventSessionChange, Timestamp: now, Current: curr})
		} else if curr.Audio != nil {
			events = append(events, Event{Type: EventAudioChange, Timestamp: now, Current: curr})
		}
		return events
	}

	if sessionChanged(prev, curr) {
		events = append(events, Event{Type: EventSessionChange, Timestamp: now, Previous: prev, Current: curr})
	} else if prev.Session != nil && curr.Session != nil {
		if subtitleChanged(prev, curr) {
			events = append(events, Event{Type: EventSubtitleChange, Timestamp: now, Previous: prev, Current: curr})
		}
		if prev.Session.Intro == nil && curr.Session.Intro != nil {
			events = append(events, Event{Type: EventIntroAvailable, Timestamp: now, Previous: prev, Current: curr})
		}
	}

	if audioChanged(prev, curr) {
		events = append(events, Event{Type: EventAudioChange, Timestamp: now, Previous: prev, Current: curr})
	}

	if (prev.Session != nil || prev.Audio != nil) && curr.Session == nil && curr.Audio == nil {
		events = append(events, Event{Type: EventStopped, Timestamp: now, Previous: prev, Current: curr})
	}

	return events
}

func sessionChanged(prev, curr *playback.Snapshot) bool {
	if curr.Session == nil {
		return false
	}
	if prev.Session == nil {
		return true
	}
	return prev.Session.Item.ID != curr.Session.Item.ID ||
		prev.Session.PlaySessionID != curr.Session.PlaySessionID
}

func subtitleChanged(prev, curr *playback.Snapshot) bool {
	a, b := prev.Session.Subtitle, curr.Session.Subtitle
	return a.WireIndex() != b.WireIndex() || a.Enabled != b.Enabled
}

func audioChanged(prev, curr *playback.Snapshot) bool {
	if curr.Audio == nil {
		return false
	}
	if prev.Audio == nil {
		return true
	}
	return prev.Audio.Item.ID != curr.Audio.Item.ID
}
