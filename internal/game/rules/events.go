package rules

import (
	"sync"
	"time"
)

// EventType indicates the category of a rules event.
type EventType string

const (
	// Turn events
	EventTurnStarted  EventType = "TURN_STARTED"
	EventTurnEnded    EventType = "TURN_ENDED"
	EventPhaseChanged EventType = "PHASE_CHANGED"

	// Zone events
	EventZoneChange  EventType = "ZONE_CHANGE"
	EventCardPlayed  EventType = "CARD_PLAYED"
	EventCardSleeped EventType = "CARD_SLEEPED"
	EventCardWoken   EventType = "CARD_WOKEN"

	// Combat events
	EventTussleResolved EventType = "TUSSLE_RESOLVED"
	EventDirectAttack   EventType = "DIRECT_ATTACK"

	// Resource events
	EventCCGained EventType = "CC_GAINED"
	EventCCSpent  EventType = "CC_SPENT"

	// Card state events
	EventControlChanged    EventType = "CONTROL_CHANGED"
	EventTransformed       EventType = "TRANSFORMED"
	EventTransformCleared  EventType = "TRANSFORM_CLEARED"
	EventAbilityActivated  EventType = "ABILITY_ACTIVATED"
	EventTriggeredResolved EventType = "TRIGGERED_RESOLVED"

	// Game events
	EventGameOver EventType = "GAME_OVER"
)

// Zone names carried on zone-change events. The game package owns the zone
// model; events carry the names so subscribers need no dependency on it.
const (
	ZoneNameHand   = "hand"
	ZoneNameInPlay = "in_play"
	ZoneNameSleep  = "sleep"
)

// Event represents a state change that other subsystems may react to.
type Event struct {
	Type        EventType
	TargetID    string // ID of the card the event is about
	SourceID    string // ID of the card or ability that caused it
	PlayerID    string // player the event concerns (controller, gainer, ...)
	Amount      int    // numeric value (damage, CC, ...)
	FromZone    string // zone the card left, for zone events
	ToZone      string // zone the card entered, for zone events
	Timestamp   time.Time
	Description string // human-readable description for the play-by-play log
}

// Listener defines a callback that reacts to incoming events.
type Listener func(Event)

// TypedListener defines a callback that reacts to a specific event type.
type TypedListener struct {
	Handle    int
	EventType EventType
	Callback  func(Event)
}

// EventBus provides a synchronous publish/subscribe implementation with type
// filtering. Listeners run on the publisher's goroutine; the engine publishes
// only between completed mutations.
type EventBus struct {
	mu             sync.RWMutex
	listeners      map[int]Listener
	typedListeners map[EventType][]TypedListener
	nextHandle     int
}

// NewEventBus constructs a fresh event bus instance.
func NewEventBus() *EventBus {
	return &EventBus{
		listeners:      make(map[int]Listener),
		typedListeners: make(map[EventType][]TypedListener),
	}
}

// Subscribe registers a listener for all events and returns a handle.
func (bus *EventBus) Subscribe(listener Listener) int {
	if listener == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.listeners[handle] = listener
	return handle
}

// SubscribeTyped registers a listener for a specific event type.
func (bus *EventBus) SubscribeTyped(eventType EventType, callback func(Event)) int {
	if callback == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.typedListeners[eventType] = append(bus.typedListeners[eventType], TypedListener{
		Handle:    handle,
		EventType: eventType,
		Callback:  callback,
	})
	return handle
}

// Unsubscribe removes the listener identified by the provided handle.
func (bus *EventBus) Unsubscribe(handle int) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	delete(bus.listeners, handle)
	for eventType, listeners := range bus.typedListeners {
		for i := len(listeners) - 1; i >= 0; i-- {
			if listeners[i].Handle == handle {
				bus.typedListeners[eventType] = append(listeners[:i], listeners[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers the event to all registered listeners synchronously.
func (bus *EventBus) Publish(event Event) {
	bus.mu.RLock()
	defer bus.mu.RUnlock()

	for _, listener := range bus.listeners {
		listener(event)
	}
	if typed, ok := bus.typedListeners[event.Type]; ok {
		for _, listener := range typed {
			listener.Callback(event)
		}
	}
}

// NewEvent creates a new event with common fields populated.
func NewEvent(eventType EventType, targetID, sourceID, playerID string) Event {
	return Event{
		Type:      eventType,
		TargetID:  targetID,
		SourceID:  sourceID,
		PlayerID:  playerID,
		Timestamp: time.Now(),
	}
}
