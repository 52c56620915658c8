package timing

import (
	"log"
	"reflect"

	"github.com/sarchlab/dpram/sim/hooking"
	"github.com/sarchlab/dpram/sim/naming"
)

// EventLogger is an hook that prints the event information
type EventLogger struct {
	logger *log.Logger
}

// NewEventLogger returns a new EventLogger which will write in to the logger
func NewEventLogger(logger *log.Logger) *EventLogger {
	h := new(EventLogger)
	h.logger = logger

	return h
}

// Func writes the event information into the logger
func (h *EventLogger) Func(ctx hooking.HookCtx) {
	if ctx.Pos != HookPosBeforeEvent {
		return
	}

	evt, ok := ctx.Item.(Event)
	if !ok {
		return
	}

	handlerName := reflect.TypeOf(evt.Handler()).String()
	if named, ok := evt.Handler().(naming.Named); ok {
		handlerName = named.Name()
	}

	h.logger.Printf("%.10f, %s -> %s",
		evt.Time(), reflect.TypeOf(evt), handlerName)
}
