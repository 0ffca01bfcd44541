package runlog

import "encoding/json"

// Bounded is a FIFO of raw JSON values holding at most limit items.
// Pushing onto a full queue drops the oldest item.
type Bounded struct {
	limit int
	items []json.RawMessage
}

func NewBounded(limit int) *Bounded {
	if limit <= 0 {
		limit = DefaultMaxEntries
	}
	return &Bounded{limit: limit}
}

func (b *Bounded) Push(v json.RawMessage) {
	b.items = append(b.items, v)
	if over := len(b.items) - b.limit; over > 0 {
		b.items = b.items[over:]
	}
}

func (b *Bounded) Len() int { return len(b.items) }

// Items returns the queued values, oldest first. Never nil, so an empty
// queue still encodes as [].
func (b *Bounded) Items() []json.RawMessage {
	if b.items == nil {
		return []json.RawMessage{}
	}
	return b.items
}
