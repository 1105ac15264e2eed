// Package cache memoizes interpretations for exact-repeat requests within
// a session. The cache is bounded: once full, the least recently used
// entry is evicted.
package cache

import (
	"container/list"
	"strings"
	"sync"

	"github.com/randomtoy/arcana-go/internal/domain"
)

const DefaultCapacity = 128

// keySeparator sits between the question and the card triples so a
// question ending in card-like text cannot collide with a different draw.
const keySeparator = "\x1f"

type entry struct {
	key    string
	interp domain.Interpretation
}

// LRU is a fixed-capacity interpretation cache. Safe for concurrent use.
type LRU struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	entries  map[string]*list.Element
}

func NewLRU(capacity int) *LRU {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &LRU{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[string]*list.Element, capacity),
	}
}

// Key builds the cache key: the question followed by the ordered
// "name:position:orientation" triples of the draw. Two requests share a
// key only when the question is byte-identical and the card sequence,
// including order and orientation, is byte-identical.
func Key(question string, cards []domain.DrawnCard) string {
	var b strings.Builder
	b.WriteString(question)
	b.WriteString(keySeparator)
	for i, c := range cards {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(c.Name)
		b.WriteByte(':')
		b.WriteString(c.Position)
		b.WriteByte(':')
		b.WriteString(string(c.Orientation))
	}
	return b.String()
}

func (l *LRU) Get(question string, cards []domain.DrawnCard) (domain.Interpretation, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	el, ok := l.entries[Key(question, cards)]
	if !ok {
		return domain.Interpretation{}, false
	}
	l.order.MoveToFront(el)
	return el.Value.(*entry).interp, true
}

func (l *LRU) Put(question string, cards []domain.DrawnCard, interp domain.Interpretation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := Key(question, cards)
	if el, ok := l.entries[key]; ok {
		el.Value.(*entry).interp = interp
		l.order.MoveToFront(el)
		return
	}

	l.entries[key] = l.order.PushFront(&entry{key: key, interp: interp})
	if l.order.Len() > l.capacity {
		oldest := l.order.Back()
		l.order.Remove(oldest)
		delete(l.entries, oldest.Value.(*entry).key)
	}
}

// Clear drops all entries; used on session teardown.
func (l *LRU) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.order.Init()
	l.entries = make(map[string]*list.Element, l.capacity)
}

// Len reports the number of cached interpretations.
func (l *LRU) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.order.Len()
}
