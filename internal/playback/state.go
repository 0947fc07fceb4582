package playback

import (
	"sync"

	"github.com/voxfeld/reel/internal/core"
	"github.com/voxfeld/reel/internal/errors"
)

// Snapshot is a point-in-time copy of the playback state: the queue, the
// committed video session (if any), and the audio projection (if any). The
// generation counter increments on every commit, letting background task
// completions detect that the session they pertain to has been replaced.
type Snapshot struct {
	Generation int64                 `json:"generation"`
	Session    *core.PlaybackSession `json:"session,omitempty"`
	Audio      *core.AudioSession    `json:"audio,omitempty"`
	Queue      core.Queue            `json:"queue"`
}

// Store owns the process-wide playback state. It has a single writer (the
// orchestrator) and hands out copies, never references to its internals.
type Store struct {
	mu      sync.RWMutex
	gen     int64
	session *core.PlaybackSession
	audio   *core.AudioSession
	queue   core.Queue
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{Generation: s.gen, Queue: s.queue}
	if s.session != nil {
		sess := *s.session
		snap.Session = &sess
	}
	if s.audio != nil {
		audio := *s.audio
		snap.Audio = &audio
	}
	return snap
}

// Restore replaces the whole state from a snapshot, typically one loaded
// from disk at process start.
func (s *Store) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen = snap.Generation
	s.queue = snap.Queue
	s.session = nil
	if snap.Session != nil {
		sess := *snap.Session
		s.session = &sess
	}
	s.audio = nil
	if snap.Audio != nil {
		audio := *snap.Audio
		s.audio = &audio
	}
}

// ResetQueue replaces the queue wholesale when a new playback sequence
// begins. The committed sessions are left alone; the next advance replaces
// them.
func (s *Store) ResetQueue(q core.Queue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = q
}

// commitVideo replaces the video session and moves the queue cursor in one
// step, so readers never observe one without the other. Returns the new
// generation.
func (s *Store) commitVideo(session core.PlaybackSession, index int) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	s.session = &session
	s.audio = nil
	s.queue.CurrentIndex = index
	return s.gen
}

// commitAudio replaces the audio projection and moves the queue cursor.
func (s *Store) commitAudio(audio core.AudioSession, index int) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	s.audio = &audio
	s.session = nil
	s.queue.CurrentIndex = index
	return s.gen
}

// AttachIntro adds intro metadata to the session committed at generation
// gen. Returns false without mutating anything when that session has since
// been replaced; a late-arriving fetch must never touch a newer session.
func (s *Store) AttachIntro(gen int64, intro *core.IntroInfo) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gen != gen || s.session == nil {
		return false
	}
	s.session.Intro = intro
	return true
}

// UpdateSubtitle recomputes the active session's subtitle selection. The
// function receives a copy of the current selection and returns the
// replacement.
func (s *Store) UpdateSubtitle(fn func(cur core.SubtitleSelection) core.SubtitleSelection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return errors.ErrNoStoredSession
	}
	s.session.Subtitle = fn(s.session.Subtitle)
	return nil
}

// Clear drops both sessions, keeping the queue for inspection.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	s.session = nil
	s.audio = nil
}
