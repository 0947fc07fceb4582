package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/voxfeld/reel/internal/core"
	"github.com/voxfeld/reel/internal/tui/styles"
)

// Queue displays the playback queue
type Queue struct {
	offset int
}

// NewQueue creates a new Queue component
func NewQueue() *Queue {
	return &Queue{}
}

// ScrollDown scrolls the queue down
func (q *Queue) ScrollDown() {
	q.offset++
}

// ScrollUp scrolls the queue up
func (q *Queue) ScrollUp() {
	if q.offset > 0 {
		q.offset--
	}
}

// Render renders the queue panel
func (q *Queue) Render(queue *core.Queue, width, height int, focused bool) string {
	title := styles.PanelTitle("Queue", focused)

	var content string
	if queue == nil || queue.IsEmpty() {
		content = styles.Muted.Render("Queue is empty")
	} else {
		content = q.renderQueue(queue, width-4, height-4)
	}

	panel := styles.Panel("", focused).
		Width(width).
		Height(height)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		content,
	))
}

func (q *Queue) renderQueue(queue *core.Queue, width, maxLines int) string {
	items := queue.Items

	// Adjust offset if needed
	if q.offset >= len(items) {
		q.offset = 0
	}

	// Calculate visible range
	visibleCount := maxLines - 1 // Leave room for "more" indicator
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := q.offset
	end := start + visibleCount
	if end > len(items) {
		end = len(items)
	}

	lines := make([]string, 0, end-start+1)

	// Fixed overhead: "XX. " (4) + "▶ " or "  " (2)
	const overhead = 6

	for i := start; i < end; i++ {
		item := items[i]

		num := fmt.Sprintf("%2d.", i+1)
		label := queueLabel(item)
		label = truncate(label, width-overhead)

		var line string
		if i == queue.CurrentIndex {
			line = styles.Playing.Render(fmt.Sprintf("%s ▶ %s", num, label))
		} else {
			line = fmt.Sprintf("%s   %s", styles.Dim.Render(num), label)
		}

		lines = append(lines, line)
	}

	// Show "more" indicator
	if end < len(items) {
		more := styles.Dim.Render(fmt.Sprintf("    ... and %d more", len(items)-end))
		lines = append(lines, more)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// queueLabel renders an item the way the server names it: episodes carry
// their series and numbering, everything else just its name.
func queueLabel(item core.Item) string {
	if item.SeriesID != "" {
		return fmt.Sprintf("%s S%d:E%d %s", item.SeriesName, item.SeasonNumber, item.EpisodeNumber, item.Name)
	}
	return item.Name
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
