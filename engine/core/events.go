package core

// Event represents a front-end event
type Event struct {
	Type    EventType
	Tick    uint64
	Payload any
}

type EventType uint16

const (
	EvtScreenChanged EventType = iota
	EvtDialogueStarted
	EvtSpeechChosen
	EvtDialogueEnded
	EvtSaveWritten
	EvtSaveDeleted
	EvtSaveLoaded
	EvtCampaignReady
	EvtTraitsConfirmed
	EvtQuit
)

var eventNames = map[EventType]string{
	EvtScreenChanged:   "screen_changed",
	EvtDialogueStarted: "dialogue_started",
	EvtSpeechChosen:    "speech_chosen",
	EvtDialogueEnded:   "dialogue_ended",
	EvtSaveWritten:     "save_written",
	EvtSaveDeleted:     "save_deleted",
	EvtSaveLoaded:      "save_loaded",
	EvtCampaignReady:   "campaign_ready",
	EvtTraitsConfirmed: "traits_confirmed",
	EvtQuit:            "quit",
}

func (t EventType) String() string {
	if n, ok := eventNames[t]; ok {
		return n
	}
	return "unknown"
}

// EventBus dispatches events to listeners
type EventBus struct {
	listeners map[EventType][]EventHandler
	any       []EventHandler
	queue     []Event
}

type EventHandler func(e Event)

func NewEventBus() *EventBus {
	return &EventBus{
		listeners: make(map[EventType][]EventHandler),
	}
}

// On registers a handler for an event type
func (eb *EventBus) On(t EventType, h EventHandler) {
	eb.listeners[t] = append(eb.listeners[t], h)
}

// OnAny registers a handler that sees every event, after typed handlers
func (eb *EventBus) OnAny(h EventHandler) {
	eb.any = append(eb.any, h)
}

// Emit queues an event for dispatch
func (eb *EventBus) Emit(e Event) {
	eb.queue = append(eb.queue, e)
}

// Pending returns the number of queued events
func (eb *EventBus) Pending() int {
	return len(eb.queue)
}

// Dispatch processes all queued events. Handlers may emit further events;
// those are delivered on the next Dispatch.
func (eb *EventBus) Dispatch() {
	queue := eb.queue
	eb.queue = nil
	for _, e := range queue {
		for _, h := range eb.listeners[e.Type] {
			h(e)
		}
		for _, h := range eb.any {
			h(e)
		}
	}
}
