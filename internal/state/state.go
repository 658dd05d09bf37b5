// Package state holds the shared UI state: which stage is showing, the
// chosen sign, the open and hovered constellation nodes, and whether the
// assistant panel is open.
//
// A Store is created by the caller and handed to the views that need it.
// Views observe changes with Subscribe.
package state

import (
	"sync"
	"time"

	"github.com/litescript/ls-constellation/internal/zodiac"
)

// Stage is the top-level screen.
type Stage string

const (
	StageIntro Stage = "intro"
	StageMain  Stage = "main"
)

// EventType names a state transition.
type EventType string

const (
	EventIntroCompleted EventType = "INTRO_COMPLETED"
	EventSignChanged    EventType = "SIGN_CHANGED"
	EventNodeOpened     EventType = "NODE_OPENED"
	EventNodeClosed     EventType = "NODE_CLOSED"
	EventAIOpened       EventType = "AI_OPENED"
	EventAIClosed       EventType = "AI_CLOSED"
	EventReset          EventType = "RESET"
)

// Event records one transition.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Sign      string    `json:"sign,omitempty"`
	Node      string    `json:"node,omitempty"`
}

// Snapshot is an immutable copy of the store.
type Snapshot struct {
	Stage          Stage
	Sign           zodiac.Sign
	HasSign        bool
	IntroCompleted bool
	ActiveNode     string // "" when no section is open
	HoveredNode    string // "" when nothing is hovered
	AIOpen         bool
	Events         []Event
}

// Listener receives the snapshot taken right after a change.
type Listener func(Snapshot)

// Config holds configuration for the store.
type Config struct {
	MaxEvents int
	Now       func() time.Time
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxEvents: 50,
		Now:       time.Now,
	}
}

type fields struct {
	stage          Stage
	sign           zodiac.Sign
	hasSign        bool
	introCompleted bool
	activeNode     string
	hoveredNode    string
	aiOpen         bool
}

func initial() fields {
	return fields{stage: StageIntro}
}

// Store is the observable UI state. It is safe for concurrent use.
type Store struct {
	mu sync.RWMutex
	fields

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int
	now          func() time.Time

	subMu     sync.Mutex
	listeners map[int]Listener
	nextID    int
}

// NewStore creates a store in the intro stage with no sign chosen.
func NewStore(cfg Config) *Store {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Store{
		fields:    initial(),
		maxEvents: maxEvents,
		events:    make([]Event, 0, maxEvents),
		now:       now,
		listeners: make(map[int]Listener),
	}
}

// Subscribe registers fn to be called after every change. Listeners run on
// the mutating goroutine, outside the store's lock, so they may read the
// store or mutate it again. The returned function removes the listener.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.listeners, id)
			s.subMu.Unlock()
		})
	}
}

// update applies fn under the write lock and, if it reports a change,
// notifies listeners.
func (s *Store) update(fn func(f *fields) []Event) {
	s.mu.Lock()
	before := s.fields
	events := fn(&s.fields)
	for _, e := range events {
		e.Timestamp = s.now()
		s.addEvent(e)
	}
	changed := before != s.fields || len(events) > 0
	var snap Snapshot
	if changed {
		snap = s.snapshotLocked()
	}
	s.mu.Unlock()

	if changed {
		s.notify(snap)
	}
}

func (s *Store) notify(snap Snapshot) {
	s.subMu.Lock()
	ls := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		ls = append(ls, l)
	}
	s.subMu.Unlock()

	for _, l := range ls {
		l(snap)
	}
}

// SetStage switches the top-level screen.
func (s *Store) SetStage(stage Stage) {
	s.update(func(f *fields) []Event {
		f.stage = stage
		return nil
	})
}

// SetSign changes the displayed constellation.
func (s *Store) SetSign(sign zodiac.Sign) {
	s.update(func(f *fields) []Event {
		if f.hasSign && f.sign == sign {
			return nil
		}
		f.sign, f.hasSign = sign, true
		return []Event{{Type: EventSignChanged, Sign: sign.String()}}
	})
}

// CompleteIntro sets the sign, marks the intro done and moves to the main stage.
func (s *Store) CompleteIntro(sign zodiac.Sign) {
	s.update(func(f *fields) []Event {
		f.sign, f.hasSign = sign, true
		f.introCompleted = true
		f.stage = StageMain
		return []Event{{Type: EventIntroCompleted, Sign: sign.String()}}
	})
}

// SetActiveNode opens the section bound to a node; "" closes it.
func (s *Store) SetActiveNode(node string) {
	s.update(func(f *fields) []Event {
		if f.activeNode == node {
			return nil
		}
		prev := f.activeNode
		f.activeNode = node
		if node == "" {
			return []Event{{Type: EventNodeClosed, Node: prev}}
		}
		return []Event{{Type: EventNodeOpened, Node: node}}
	})
}

// SetHoveredNode highlights a node; "" clears the highlight. Hover changes
// are not logged.
func (s *Store) SetHoveredNode(node string) {
	s.update(func(f *fields) []Event {
		f.hoveredNode = node
		return nil
	})
}

// ToggleAI flips the assistant panel.
func (s *Store) ToggleAI() {
	s.update(func(f *fields) []Event {
		f.aiOpen = !f.aiOpen
		return []Event{aiEvent(f.aiOpen)}
	})
}

// OpenAI opens the assistant panel.
func (s *Store) OpenAI() {
	s.update(func(f *fields) []Event {
		if f.aiOpen {
			return nil
		}
		f.aiOpen = true
		return []Event{aiEvent(true)}
	})
}

// CloseAI closes the assistant panel.
func (s *Store) CloseAI() {
	s.update(func(f *fields) []Event {
		if !f.aiOpen {
			return nil
		}
		f.aiOpen = false
		return []Event{aiEvent(false)}
	})
}

func aiEvent(open bool) Event {
	if open {
		return Event{Type: EventAIOpened}
	}
	return Event{Type: EventAIClosed}
}

// Reset returns to the initial state. The event log is kept.
func (s *Store) Reset() {
	s.update(func(f *fields) []Event {
		*f = initial()
		return []Event{{Type: EventReset}}
	})
}

// addEvent adds an event to the ring buffer.
func (s *Store) addEvent(e Event) {
	if len(s.events) < s.maxEvents {
		s.events = append(s.events, e)
	} else {
		s.events[s.eventWriteAt] = e
		s.eventWriteAt = (s.eventWriteAt + 1) % s.maxEvents
	}
}

// Snapshot returns a consistent snapshot of current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Stage:          s.stage,
		Sign:           s.sign,
		HasSign:        s.hasSign,
		IntroCompleted: s.introCompleted,
		ActiveNode:     s.activeNode,
		HoveredNode:    s.hoveredNode,
		AIOpen:         s.aiOpen,
		Events:         s.eventsOrdered(),
	}
}

// eventsOrdered returns events in chronological order.
func (s *Store) eventsOrdered() []Event {
	if len(s.events) == 0 {
		return nil
	}

	// If buffer isn't full yet, just copy
	if len(s.events) < s.maxEvents {
		result := make([]Event, len(s.events))
		copy(result, s.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, s.maxEvents)
	for i := 0; i < s.maxEvents; i++ {
		result[i] = s.events[(s.eventWriteAt+i)%s.maxEvents]
	}
	return result
}

// RecentEvents returns the last n events.
func (s *Store) RecentEvents(n int) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.eventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}
