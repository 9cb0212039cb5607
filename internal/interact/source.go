package interact

// Feed is an EventSource that delivers published events synchronously to
// its subscribers in registration order. Hosts translate their native
// input into Events and Publish them; tests use a Feed directly.
type Feed struct {
	handlers []feedEntry
	nextID   uint64
}

type feedEntry struct {
	id uint64
	h  Handler
}

// NewFeed creates an empty feed.
func NewFeed() *Feed {
	return &Feed{}
}

// Subscribe registers h.
func (f *Feed) Subscribe(h Handler) Subscription {
	f.nextID++
	f.handlers = append(f.handlers, feedEntry{id: f.nextID, h: h})
	return &feedSubscription{feed: f, id: f.nextID}
}

// Publish delivers ev to every subscriber. The result is consumed if any
// subscriber consumed the event.
func (f *Feed) Publish(ev Event) Result {
	var res Result
	// copy so handlers may unsubscribe during delivery
	handlers := append([]feedEntry(nil), f.handlers...)
	for _, e := range handlers {
		if e.h(ev).Consumed {
			res.Consumed = true
		}
	}
	return res
}

// Subscribers returns the number of active subscriptions.
func (f *Feed) Subscribers() int {
	return len(f.handlers)
}

func (f *Feed) remove(id uint64) {
	for i, e := range f.handlers {
		if e.id == id {
			f.handlers = append(f.handlers[:i], f.handlers[i+1:]...)
			return
		}
	}
}

type feedSubscription struct {
	feed *Feed
	id   uint64
	done bool
}

func (s *feedSubscription) Unsubscribe() {
	if s.done {
		return
	}
	s.done = true
	s.feed.remove(s.id)
}
