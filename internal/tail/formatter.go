package tail

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"
)

// Formatter formats events for output.
type Formatter struct {
	showEmoji     bool
	showTimestamp bool
	template      *template.Template
}

// FormatterOption configures a Formatter.
type FormatterOption func(*Formatter)

// WithEmoji enables emoji output.
func WithEmoji(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showEmoji = enabled
	}
}

// WithTimestamp enables timestamp output.
func WithTimestamp(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showTimestamp = enabled
	}
}

// WithTemplate sets a custom format template.
func WithTemplate(tmpl string) FormatterOption {
	return func(f *Formatter) {
		if tmpl != "" {
			t, err := template.New("format").Parse(tmpl)
			if err == nil {
				f.template = t
			}
		}
	}
}

// NewFormatter creates a new formatter with the given options.
func NewFormatter(opts ...FormatterOption) *Formatter {
	f := &Formatter{
		showEmoji:     true,
		showTimestamp: false,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format formats an event as a string.
func (f *Formatter) Format(e Event) string {
	if f.template != nil {
		return f.formatTemplate(e)
	}
	return f.formatLine(e)
}

// formatLine formats an event as a simple line.
func (f *Formatter) formatLine(e Event) string {
	var parts []string

	// Timestamp
	if f.showTimestamp {
		parts = append(parts, e.Timestamp.Format("15:04:05"))
	}

	// Emoji
	if f.showEmoji {
		parts = append(parts, eventEmoji(e.Type))
	}

	// Event description
	parts = append(parts, f.eventDescription(e))

	return strings.Join(parts, " ")
}

// formatTemplate formats an event using a custom template.
func (f *Formatter) formatTemplate(e Event) string {
	data := templateData{
		Type:      eventTypeName(e.Type),
		Emoji:     eventEmoji(e.Type),
		Timestamp: e.Timestamp,
		Time:      e.Timestamp.Format("15:04:05"),
	}

	if e.Current != nil && e.Current.Session != nil {
		sess := e.Current.Session
		data.Title = sess.ItemName
		data.Episode = sess.EpisodeTitle
		data.Container = sess.Container
		data.SubtitleOn = sess.Subtitle.Enabled
		data.QueueIndex = e.Current.Queue.CurrentIndex
		data.QueueLen = e.Current.Queue.Len()
	}

	if e.Current != nil && e.Current.Audio != nil {
		data.Title = e.Current.Audio.Item.Name
		data.QueueIndex = e.Current.Queue.CurrentIndex
		data.QueueLen = e.Current.Queue.Len()
	}

	var buf bytes.Buffer
	if err := f.template.Execute(&buf, data); err != nil {
		return f.formatLine(e)
	}
	return buf.String()
}

type templateData struct {
	Type       string
	Emoji      string
	Timestamp  time.Time
	Time       string
	Title      string
	Episode    string
	Container  string
	SubtitleOn bool
	QueueIndex int
	QueueLen   int
}

// eventDescription returns a human-readable description of the event.
func (f *Formatter) eventDescription(e Event) string {
	switch e.Type {
	case EventSessionChange:
		if e.Current != nil && e.Current.Session != nil {
			sess := e.Current.Session
			if sess.EpisodeTitle != "" {
				return fmt.Sprintf("Now playing: %s (%s)", sess.ItemName, sess.EpisodeTitle)
			}
			return fmt.Sprintf("Now playing: %s", sess.ItemName)
		}
		return "Session changed"

	case EventAudioChange:
		if e.Current != nil && e.Current.Audio != nil {
			return fmt.Sprintf("Now playing: %s", e.Current.Audio.Item.Name)
		}
		return "Audio changed"

	case EventSubtitleChange:
		if e.Current != nil && e.Current.Session != nil {
			sub := e.Current.Session.Subtitle
			if sub.Enabled {
				return fmt.Sprintf("Subtitles on (track %d)", sub.Track)
			}
			return "Subtitles off"
		}
		return "Subtitles changed"

	case EventIntroAvailable:
		if e.Current != nil && e.Current.Session != nil && e.Current.Session.Intro != nil {
			intro := e.Current.Session.Intro
			if intro.Introduction != nil && intro.Introduction.Valid {
				return fmt.Sprintf("Intro skip available (%.0fs to %.0fs)",
					intro.Introduction.Start, intro.Introduction.End)
			}
		}
		return "Skip segments available"

	case EventStopped:
		return "Playback stopped"

	default:
		return "Unknown event"
	}
}

// eventEmoji returns an emoji for the event type.
func eventEmoji(t EventType) string {
	switch t {
	case EventSessionChange:
		return "🎬"
	case EventAudioChange:
		return "🎵"
	case EventSubtitleChange:
		return "💬"
	case EventIntroAvailable:
		return "⏭️"
	case EventStopped:
		return "⏹️"
	default:
		return "❓"
	}
}

// eventTypeName returns the name of the event type.
func eventTypeName(t EventType) string {
	switch t {
	case EventSessionChange:
		return "session_change"
	case EventAudioChange:
		return "audio_change"
	case EventSubtitleChange:
		return "subtitle_change"
	case EventIntroAvailable:
		return "intro_available"
	case EventStopped:
		return "stopped"
	default:
		return "unknown"
	}
}
