package audit

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"gorm.io/datatypes"

	"github.com/BruksfildServices01/event-manager/internal/models"
)

type Event struct {
	ActorID  string
	Action   string
	Entity   string
	EntityID string
	Metadata any
}

// Sink persists audit entries.
type Sink interface {
	Write(ctx context.Context, entry *models.AuditLog) error
}

type Dispatcher struct {
	sink  Sink
	queue chan Event
	now   func() time.Time

	closeOnce sync.Once
	done      chan struct{}
}

func NewDispatcher(sink Sink, buffer int) *Dispatcher {
	if buffer <= 0 {
		buffer = 100
	}
	d := &Dispatcher{
		sink:  sink,
		queue: make(chan Event, buffer),
		now:   time.Now,
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		entry := &models.AuditLog{
			ActorID:   ev.ActorID,
			Action:    ev.Action,
			Entity:    ev.Entity,
			EntityID:  ev.EntityID,
			Metadata:  encodeMetadata(ev.Metadata),
			CreatedAt: d.now(),
		}
		if err := d.sink.Write(context.Background(), entry); err != nil {
			log.Println("audit error:", err)
		}
	}
}

func encodeMetadata(meta any) datatypes.JSON {
	if meta == nil {
		return nil
	}
	b, err := json.Marshal(meta)
	if err != nil {
		log.Println("audit metadata:", err)
		return nil
	}
	return datatypes.JSON(b)
}

// Dispatch never blocks the request; a full queue drops the event.
func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		log.Println("audit queue full, dropping event")
	}
}

// Close drains the queue and waits for the worker. Dispatch must not be
// called afterwards.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.queue)
	})
	<-d.done
}
