package domain

import (
	"container/list"
	"sync"
)

// DefaultViewHistoryCapacity is the number of joke IDs retained per user.
const DefaultViewHistoryCapacity = 100

// ViewHistory is a process-local, per-user bounded set of recently seen joke IDs.
// Each user's set behaves as an LRU: re-adding an ID refreshes it, and once the
// set is over capacity the oldest IDs are evicted first.
//
// The user map is guarded by its own lock; each user's set has a separate
// lock so concurrent requests for different users never contend.
type ViewHistory struct {
	capacity int

	mu    sync.Mutex
	users map[int64]*userViews
}

type userViews struct {
	mu sync.Mutex

	// order holds joke IDs, front is most recent.
	order *list.List
	index map[int64]*list.Element
}

// NewViewHistory creates a ViewHistory retaining at most capacity IDs per user.
func NewViewHistory(capacity int) *ViewHistory {
	if capacity <= 0 {
		capacity = DefaultViewHistoryCapacity
	}
	return &ViewHistory{
		capacity: capacity,
		users:    make(map[int64]*userViews),
	}
}

func (h *ViewHistory) forUser(userID int64) *userViews {
	h.mu.Lock()
	defer h.mu.Unlock()

	v, ok := h.users[userID]
	if !ok {
		v = &userViews{
			order: list.New(),
			index: make(map[int64]*list.Element),
		}
		h.users[userID] = v
	}
	return v
}

// Merge adds joke IDs to the user's set in order, so the last ID given is the most recent.
func (h *ViewHistory) Merge(userID int64, jokeIDs []int64) {
	v := h.forUser(userID)

	v.mu.Lock()
	defer v.mu.Unlock()

	for _, id := range jokeIDs {
		if el, ok := v.index[id]; ok {
			v.order.MoveToFront(el)
			continue
		}
		v.index[id] = v.order.PushFront(id)
	}

	for v.order.Len() > h.capacity {
		oldest := v.order.Back()
		v.order.Remove(oldest)
		delete(v.index, oldest.Value.(int64))
	}
}

// Snapshot returns the user's current IDs, most recent first.
func (h *ViewHistory) Snapshot(userID int64) []int64 {
	h.mu.Lock()
	v, ok := h.users[userID]
	h.mu.Unlock()
	if !ok {
		return nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	ids := make([]int64, 0, v.order.Len())
	for el := v.order.Front(); el != nil; el = el.Next() {
		ids = append(ids, el.Value.(int64))
	}
	return ids
}

// Users returns the number of users with a tracked history.
func (h *ViewHistory) Users() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.users)
}
