package art

import (
	"context"
	"sync"

	"github.com/genricoloni/mpdisplay/internal/domain"
	"go.uber.org/zap"
)

// Completion is a finished background resolution
type Completion struct {
	Slot    domain.SlotID
	Artwork domain.Artwork
}

// Queue runs resolutions off the frame loop. At most one completion is
// pending: a newer request supersedes any earlier one, finished or not.
type Queue struct {
	logger   *zap.Logger
	resolver domain.ArtResolver

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu        sync.Mutex
	submitted uint64
	results   chan Completion
}

// NewQueue creates a queue around resolver
func NewQueue(logger *zap.Logger, resolver domain.ArtResolver) *Queue {
	ctx, cancel := context.WithCancel(context.Background())
	return &Queue{
		logger:   logger,
		resolver: resolver,
		ctx:      ctx,
		cancel:   cancel,
		results:  make(chan Completion, 1),
	}
}

// Submit starts resolving song in the background
func (q *Queue) Submit(song domain.Song) {
	q.mu.Lock()
	q.submitted++
	seq := q.submitted
	q.mu.Unlock()

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		artwork := q.resolver.Resolve(q.ctx, song)
		q.deliver(seq, Completion{Slot: song.Slot, Artwork: artwork})
	}()
}

func (q *Queue) deliver(seq uint64, c Completion) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if seq != q.submitted {
		q.logger.Debug("Dropping superseded artwork", zap.Uint32("slot", c.Slot.ID))
		return
	}
	select {
	case <-q.results:
	default:
	}
	q.results <- c
}

// Poll returns the pending completion, if any, without blocking
func (q *Queue) Poll() (Completion, bool) {
	select {
	case c := <-q.results:
		return c, true
	default:
		return Completion{}, false
	}
}

// Close cancels in-flight resolutions and waits for them to return
func (q *Queue) Close() {
	q.cancel()
	q.wg.Wait()
}
