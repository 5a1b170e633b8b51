// Package notify implements a fire-and-forget broadcast for history changes.
// The signal carries no payload: subscribers reload on "something changed."
package notify

import "sync/atomic"

// Broker fans a history-changed signal out to subscribers.
//
// Concurrency model: a single internal loop owns the subscriber set; public
// methods talk to it through channels, so no mutexes are required. Publish
// never blocks — a subscriber that has not drained its channel already has a
// pending signal, which is enough for at-least-once delivery.
type Broker struct {
	subscribeCh   chan chan struct{}
	unsubscribeCh chan chan struct{}
	publishCh     chan struct{}

	stopCh  chan struct{}
	stopped chan struct{}
	closed  atomic.Bool
}

// NewBroker creates a broker with its loop running.
func NewBroker() *Broker {
	b := &Broker{
		subscribeCh:   make(chan chan struct{}),
		unsubscribeCh: make(chan chan struct{}),
		publishCh:     make(chan struct{}, 64),
		stopCh:        make(chan struct{}),
		stopped:       make(chan struct{}),
	}
	go b.run()
	return b
}

func (b *Broker) run() {
	defer close(b.stopped)

	subscribers := make(map[chan struct{}]struct{})

	for {
		select {
		case <-b.stopCh:
			for ch := range subscribers {
				close(ch)
			}
			return

		case ch := <-b.subscribeCh:
			subscribers[ch] = struct{}{}

		case ch := <-b.unsubscribeCh:
			if _, ok := subscribers[ch]; ok {
				delete(subscribers, ch)
				close(ch)
			}

		case <-b.publishCh:
			for ch := range subscribers {
				select {
				case ch <- struct{}{}:
				default:
					// Signal already pending; coalesce.
				}
			}
		}
	}
}

// Close stops the loop and closes all subscriber channels.
func (b *Broker) Close() {
	if b.closed.CompareAndSwap(false, true) {
		close(b.stopCh)
	}
	<-b.stopped
}

// Subscribe adds a subscriber and returns its signal channel.
func (b *Broker) Subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	if b.closed.Load() {
		close(ch)
		return ch
	}

	select {
	case b.subscribeCh <- ch:
	case <-b.stopped:
		close(ch)
	}
	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (b *Broker) Unsubscribe(ch chan struct{}) {
	if b.closed.Load() {
		return
	}
	select {
	case b.unsubscribeCh <- ch:
	case <-b.stopped:
	}
}

// Publish signals that history changed. Emitted after a successful commit;
// never blocks the writer.
func (b *Broker) Publish() {
	if b.closed.Load() {
		return
	}
	select {
	case b.publishCh <- struct{}{}:
	case <-b.stopped:
	default:
		// Publish buffer full; subscribers already have signals queued.
	}
}
