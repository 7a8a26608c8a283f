// Package livetext fans the text of an animated surface out to any number
// of listeners, such as SSE connections or a terminal view.
package livetext

import (
	"context"
	"sync"
)

const subscriberBuffer = 16

// Feed is a typeanim.Surface whose every update is delivered to its
// subscribers. A subscriber that falls behind loses intermediate frames,
// never the latest one.
type Feed struct {
	mu   sync.Mutex
	text string
	subs map[chan string]struct{}
}

// NewFeed returns a feed showing the empty string.
func NewFeed() *Feed {
	return &Feed{subs: make(map[chan string]struct{})}
}

func (f *Feed) Text() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.text
}

func (f *Feed) SetText(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.text = text
	for ch := range f.subs {
		deliver(ch, text)
	}
}

// deliver sends text, dropping the oldest queued frame when ch is full.
func deliver(ch chan string, text string) {
	for {
		select {
		case ch <- text:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

// Subscribe returns a channel that first yields the current text and then
// every update until ctx is done, at which point it is closed.
func (f *Feed) Subscribe(ctx context.Context) <-chan string {
	ch := make(chan string, subscriberBuffer)

	f.mu.Lock()
	ch <- f.text
	f.subs[ch] = struct{}{}
	f.mu.Unlock()

	go func() {
		<-ctx.Done()
		f.mu.Lock()
		delete(f.subs, ch)
		close(ch)
		f.mu.Unlock()
	}()
	return ch
}

// Subscribers reports how many listeners are attached.
func (f *Feed) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}
