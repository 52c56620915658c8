package timing

import (
	"sync"

	"github.com/sarchlab/dpram/sim/hooking"
	"github.com/sarchlab/dpram/sim/id"
	"github.com/sarchlab/dpram/sim/naming"
)

// TickEvent is a generic event that almost all the component can use to
// update their status.
type TickEvent struct {
	EventBase
}

// MakeTickEvent creates a new TickEvent
func MakeTickEvent(handler Handler, time VTimeInSec) TickEvent {
	return TickEvent{
		EventBase: EventBase{
			ID:      id.Generate(),
			time:    time,
			handler: handler,
		},
	}
}

// A Ticker is an object that updates states with ticks.
type Ticker interface {
	Tick() bool
}

// TickScheduler can help schedule tick events.
type TickScheduler struct {
	lock      sync.Mutex
	handler   Handler
	Freq      Freq
	Engine    Engine
	secondary bool

	nextTickTime VTimeInSec
}

// NewTickScheduler creates a scheduler for tick events.
func NewTickScheduler(
	handler Handler,
	engine Engine,
	freq Freq,
) *TickScheduler {
	ticker := new(TickScheduler)

	ticker.handler = handler
	ticker.Engine = engine
	ticker.Freq = freq
	ticker.nextTickTime = -1 // This will make sure the first tick is scheduled

	return ticker
}

// NewSecondaryTickScheduler creates a scheduler that always schedule secondary
// tick events.
func NewSecondaryTickScheduler(
	handler Handler,
	engine Engine,
	freq Freq,
) *TickScheduler {
	ticker := NewTickScheduler(handler, engine, freq)
	ticker.secondary = true

	return ticker
}

// TickNow schedule a Tick event at the current time.
func (t *TickScheduler) TickNow() {
	t.lock.Lock()
	defer t.lock.Unlock()

	now := t.Now()
	if t.nextTickTime >= now {
		return
	}

	t.nextTickTime = t.Freq.ThisTick(now)
	t.schedule()
}

// TickLater will schedule a tick event at the cycle after the now time.
func (t *TickScheduler) TickLater() {
	t.lock.Lock()
	defer t.lock.Unlock()

	next := t.Freq.NextTick(t.Now())
	if t.nextTickTime >= next {
		return
	}

	t.nextTickTime = next
	t.schedule()
}

func (t *TickScheduler) schedule() {
	tick := MakeTickEvent(t.handler, t.nextTickTime)
	tick.secondary = t.secondary

	t.Engine.Schedule(tick)
}

// Now returns the current time of the engine.
func (t *TickScheduler) Now() VTimeInSec {
	return t.Engine.Now()
}

// TickingComponent is a type of component that update states from cycle to
// cycle. A programmer would only need to program a tick function for a ticking
// component.
type TickingComponent struct {
	naming.NamedBase
	hooking.HookableBase
	*TickScheduler

	ticker Ticker
}

// Handle triggers the tick function of the TickingComponent
func (c *TickingComponent) Handle(_ Event) error {
	madeProgress := c.ticker.Tick()
	if madeProgress {
		c.TickLater()
	}

	return nil
}

// NewTickingComponent creates a new ticking component
func NewTickingComponent(
	name string,
	engine Engine,
	freq Freq,
	ticker Ticker,
) *TickingComponent {
	tc := new(TickingComponent)
	tc.NamedBase = naming.MakeNamedBase(name)
	tc.TickScheduler = NewTickScheduler(tc, engine, freq)
	tc.ticker = ticker

	return tc
}

// NewSecondaryTickingComponent creates a new ticking component whose ticks run
// after all primary events of the same time.
func NewSecondaryTickingComponent(
	name string,
	engine Engine,
	freq Freq,
	ticker Ticker,
) *TickingComponent {
	tc := new(TickingComponent)
	tc.NamedBase = naming.MakeNamedBase(name)
	tc.TickScheduler = NewSecondaryTickScheduler(tc, engine, freq)
	tc.ticker = ticker

	return tc
}
