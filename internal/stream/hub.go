package stream

import (
	"sync"

	"go.uber.org/zap"

	"talentpool/internal/models"
)

// Hub fans activity records out to live board subscribers, scoped per
// company. Publish never blocks: a subscriber that cannot keep up misses
// records, which is acceptable because the feed is display-only and clients
// can always re-fetch the paged history.
type Hub struct {
	logger *zap.Logger
	buffer int

	mu   sync.RWMutex
	subs map[uint64]map[*Subscription]struct{}
}

type Subscription struct {
	C chan models.ActivityRecord

	hub       *Hub
	companyID uint64
	once      sync.Once
}

func NewHub(logger *zap.Logger, buffer int) *Hub {
	if buffer <= 0 {
		buffer = 32
	}
	return &Hub{
		logger: logger,
		buffer: buffer,
		subs:   make(map[uint64]map[*Subscription]struct{}),
	}
}

func (h *Hub) Subscribe(companyID uint64) *Subscription {
	sub := &Subscription{
		C:         make(chan models.ActivityRecord, h.buffer),
		hub:       h,
		companyID: companyID,
	}
	h.mu.Lock()
	if h.subs[companyID] == nil {
		h.subs[companyID] = make(map[*Subscription]struct{})
	}
	h.subs[companyID][sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

func (sub *Subscription) Close() {
	if sub == nil || sub.hub == nil {
		return
	}
	sub.once.Do(func() {
		h := sub.hub
		h.mu.Lock()
		if set, ok := h.subs[sub.companyID]; ok {
			delete(set, sub)
			if len(set) == 0 {
				delete(h.subs, sub.companyID)
			}
		}
		h.mu.Unlock()
		close(sub.C)
	})
}

func (h *Hub) Publish(rec models.ActivityRecord) {
	if h == nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs[rec.CompanyID] {
		select {
		case sub.C <- rec:
		default:
			if h.logger != nil {
				h.logger.Debug("dropped activity for slow subscriber",
					zap.Uint64("company_id", rec.CompanyID),
				)
			}
		}
	}
}

func (h *Hub) SubscriberCount(companyID uint64) int {
	if h == nil {
		return 0
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[companyID])
}
