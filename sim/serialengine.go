package sim

import (
	"log"
	"reflect"
)

// A SerialEngine is an Engine that always run events one after another.
//
// A SerialEngine is not safe for concurrent use. All events, including those
// scheduled from inside handlers, run on the goroutine that calls Run.
type SerialEngine struct {
	HookableBase

	time  VTimeInSec
	queue EventQueue

	isPaused  bool
	isRunning bool
	policy    ErrorPolicy
	logger    *log.Logger

	simulationEndHandlers []SimulationEndHandler
}

// NewSerialEngine creates a SerialEngine
func NewSerialEngine() *SerialEngine {
	e := new(SerialEngine)

	e.queue = NewEventQueue()
	e.logger = log.Default()

	return e
}

// SetErrorPolicy sets how Run reacts to a handler error.
func (e *SerialEngine) SetErrorPolicy(p ErrorPolicy) {
	e.policy = p
}

// SetLogger sets the logger that handler failures are reported to.
func (e *SerialEngine) SetLogger(logger *log.Logger) {
	e.logger = logger
}

// Schedule register an event to be happen in the future
func (e *SerialEngine) Schedule(evt Event) {
	if evt.Time() < e.time {
		log.Panicf(
			"scheduling an event earlier than current time, evt %s @ %.10f, now %.10f",
			reflect.TypeOf(evt), evt.Time(), e.time,
		)
	}

	e.queue.Push(evt)
}

// Run processes all the events scheduled in the SerialEngine
func (e *SerialEngine) Run() error {
	if e.isRunning {
		log.Panic("engine is already running")
	}

	e.isRunning = true
	defer func() { e.isRunning = false }()

	for !e.isPaused {
		evt := e.queue.Pop()
		if evt == nil {
			return nil
		}

		if evt.Time() < e.time {
			log.Panicf(
				"cannot run event in the past, evt %s @ %.10f, now %.10f",
				reflect.TypeOf(evt), evt.Time(), e.time,
			)
		}
		e.time = evt.Time()

		hookCtx := HookCtx{
			Domain: e,
			Pos:    HookPosBeforeEvent,
			Item:   evt,
		}
		e.InvokeHook(hookCtx)

		err := e.handle(evt)

		hookCtx.Pos = HookPosAfterEvent
		hookCtx.Detail = err
		e.InvokeHook(hookCtx)

		if err == nil {
			continue
		}

		if e.policy == StopOnError {
			return err
		}

		e.logger.Printf("%v, continuing", err)
	}

	return nil
}

func (e *SerialEngine) handle(evt Event) error {
	handler := evt.Handler()
	if handler == nil {
		return nil
	}

	err := handler.Handle(evt)
	if err != nil {
		return &EventError{Time: e.time, Event: evt, Err: err}
	}

	return nil
}

// Pause prevents the SerialEngine to trigger more events. If called from a
// handler, Run returns once that handler finishes.
func (e *SerialEngine) Pause() {
	e.isPaused = true
}

// Continue allows the SerialEngine to trigger more events.
func (e *SerialEngine) Continue() {
	e.isPaused = false
}

// CurrentTime returns the current time at which the engine is at.
// Specifically, the run time of the current event.
func (e *SerialEngine) CurrentTime() VTimeInSec {
	return e.time
}

// PendingEvents returns the number of events waiting in the queue.
func (e *SerialEngine) PendingEvents() int {
	return e.queue.Len()
}

// RegisterSimulationEndHandler invokes all the registered simulation end
// handler.
func (e *SerialEngine) RegisterSimulationEndHandler(
	handler SimulationEndHandler,
) {
	e.simulationEndHandlers = append(e.simulationEndHandlers, handler)
}

// Finished should be called after the simulation ends. This function
// calls all the registered SimulationEndHandler.
func (e *SerialEngine) Finished() {
	for _, h := range e.simulationEndHandlers {
		h.Handle(e.time)
	}
}
