package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"github.com/umojahub/umoja/backend/internal/logger"
	"github.com/umojahub/umoja/backend/internal/services"
)

// Dispatcher polls for due scheduled broadcasts and sends them. It is the
// concrete stand-in for the external scheduler collaborator: it flips sentAt
// exactly once per message and fans out to delivery channels, with no retry
// policy of its own.
type Dispatcher struct {
	cron     *cron.Cron
	messages *services.MessageService
}

func NewDispatcher(messages *services.MessageService) *Dispatcher {
	return &Dispatcher{
		cron:     cron.New(),
		messages: messages,
	}
}

// Start begins polling once a minute.
func (d *Dispatcher) Start() error {
	_, err := d.cron.AddFunc("@every 1m", d.tick)
	if err != nil {
		return err
	}
	d.cron.Start()
	return nil
}

// Stop halts polling and waits for a running tick to finish.
func (d *Dispatcher) Stop() {
	ctx := d.cron.Stop()
	<-ctx.Done()
}

func (d *Dispatcher) tick() {
	n, err := d.messages.DispatchDue(time.Now())
	if err != nil {
		logger.Log().Errorf("dispatch scheduled broadcasts: %v", err)
		return
	}
	if n > 0 {
		logger.WithFields(map[string]interface{}{"count": n}).Info("dispatched scheduled broadcasts")
	}
}
