package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/accesshub/rbac-service/internal/api/metrics"
	"github.com/accesshub/rbac-service/internal/core/domain"
	"github.com/accesshub/rbac-service/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher fans committed audit entries out to the external feed on a
// fixed set of workers. Entries are sharded by user id with consistent
// hashing so the feed preserves per-user ordering. Delivery is best-effort:
// a full shard drops the entry rather than blocking the request path.
type Dispatcher struct {
	workers   []chan domain.AuditLogEntry
	publisher ports.AuditPublisher
	log       zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, publisher ports.AuditPublisher, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan domain.AuditLogEntry, numWorkers),
		publisher: publisher,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditLogEntry, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands an entry to the worker owning its shard without blocking.
func (d *Dispatcher) Enqueue(entry domain.AuditLogEntry) {
	i := d.shardIndex(entry)
	select {
	case d.workers[i] <- entry:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
	default:
		metrics.AuditPublishTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().
			Str("action", entry.Action).
			Int("worker_id", i).
			Msg("audit fan-out shard full, entry dropped")
	}
}

// shardIndex maps an entry deterministically to a worker. Entries with no
// user id (failed logins for unknown accounts) share the system shard key.
func (d *Dispatcher) shardIndex(entry domain.AuditLogEntry) int {
	key := "system"
	if entry.UserID != nil {
		key = *entry.UserID
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditLogEntry) {
	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-ch:
			if !ok {
				return
			}
			metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			if err := d.publisher.Publish(ctx, entry); err != nil {
				metrics.AuditPublishTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Str("action", entry.Action).
					Int("worker_id", id).
					Msg("audit publish failed")
				continue
			}
			metrics.AuditPublishTotal.WithLabelValues("ok").Inc()
		}
	}
}
