package core

// Queue is an ordered sequence of playable items with a current-position
// cursor. It is replaced wholesale whenever a new playback sequence begins
// and mutated in place only by the orchestrator when advancing.
type Queue struct {
	Items        []Item `json:"items"`
	CurrentIndex int    `json:"current_index"`
}

// NewQueue builds a queue positioned at the given index.
func NewQueue(items []Item, index int) Queue {
	return Queue{Items: items, CurrentIndex: index}
}

// Current returns the item under the cursor, or nil if the queue is empty
// or the cursor is out of range.
func (q *Queue) Current() *Item {
	return q.At(q.CurrentIndex)
}

// At returns the item at index i, or nil when i is out of range.
func (q *Queue) At(i int) *Item {
	if q == nil || i < 0 || i >= len(q.Items) {
		return nil
	}
	return &q.Items[i]
}

// Upcoming returns the items after the current position.
func (q *Queue) Upcoming() []Item {
	if q == nil || len(q.Items) == 0 || q.CurrentIndex < 0 || q.CurrentIndex >= len(q.Items)-1 {
		return nil
	}
	return q.Items[q.CurrentIndex+1:]
}

// Len returns the total number of items in the queue.
func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.Items)
}

// IsEmpty returns true if the queue has no items.
func (q *Queue) IsEmpty() bool {
	return q.Len() == 0
}
