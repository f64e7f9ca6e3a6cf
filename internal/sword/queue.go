package sword

import (
	"math/rand"

	"github.com/samdwyer/linguaquest/internal/gamedata"
)

// SpawnQueue is the FIFO of entries waiting to become blocks.
type SpawnQueue struct {
	items []gamedata.Entry
}

// Rebuild clears the queue and refills it with a uniformly shuffled copy
// of entries. A nil rng keeps the given order.
func (q *SpawnQueue) Rebuild(entries []gamedata.Entry, rng *rand.Rand) {
	q.items = append(q.items[:0], entries...)
	if rng == nil {
		return
	}
	// Fisher-Yates
	for i := len(q.items) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		q.items[i], q.items[j] = q.items[j], q.items[i]
	}
}

// Enqueue appends an entry at the back.
func (q *SpawnQueue) Enqueue(e gamedata.Entry) {
	q.items = append(q.items, e)
}

// Dequeue removes and returns the front entry.
func (q *SpawnQueue) Dequeue() (gamedata.Entry, bool) {
	if len(q.items) == 0 {
		return gamedata.Entry{}, false
	}
	e := q.items[0]
	q.items = q.items[1:]
	return e, true
}

// Len returns the number of queued entries.
func (q *SpawnQueue) Len() int {
	return len(q.items)
}

// Clear empties the queue.
func (q *SpawnQueue) Clear() {
	q.items = nil
}

// Items returns a copy of the queued entries, front first.
func (q *SpawnQueue) Items() []gamedata.Entry {
	out := make([]gamedata.Entry, len(q.items))
	copy(out, q.items)
	return out
}
