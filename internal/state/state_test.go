package state

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-constellation/internal/zodiac"
)

func fixedClock() func() time.Time {
	t := time.Date(2024, 3, 21, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return t }
}

func newTestStore() *Store {
	cfg := DefaultConfig()
	cfg.Now = fixedClock()
	return NewStore(cfg)
}

func TestNewStore(t *testing.T) {
	snap := newTestStore().Snapshot()

	assert.Equal(t, StageIntro, snap.Stage)
	assert.False(t, snap.HasSign)
	assert.False(t, snap.IntroCompleted)
	assert.Empty(t, snap.ActiveNode)
	assert.Empty(t, snap.HoveredNode)
	assert.False(t, snap.AIOpen)
	assert.Empty(t, snap.Events)
}

func TestCompleteIntro(t *testing.T) {
	s := newTestStore()
	s.CompleteIntro(zodiac.Leo)

	snap := s.Snapshot()
	assert.Equal(t, StageMain, snap.Stage)
	assert.True(t, snap.HasSign)
	assert.Equal(t, zodiac.Leo, snap.Sign)
	assert.True(t, snap.IntroCompleted)
	require.Len(t, snap.Events, 1)
	assert.Equal(t, EventIntroCompleted, snap.Events[0].Type)
	assert.Equal(t, "Leo", snap.Events[0].Sign)
}

func TestNodes(t *testing.T) {
	s := newTestStore()

	s.SetHoveredNode("regulus")
	assert.Equal(t, "regulus", s.Snapshot().HoveredNode)

	s.SetActiveNode("regulus")
	s.SetActiveNode("regulus") // no-op
	s.SetActiveNode("")

	snap := s.Snapshot()
	assert.Empty(t, snap.ActiveNode)
	require.Len(t, snap.Events, 2)
	assert.Equal(t, EventNodeOpened, snap.Events[0].Type)
	assert.Equal(t, EventNodeClosed, snap.Events[1].Type)
	assert.Equal(t, "regulus", snap.Events[1].Node)
}

func TestAIPanel(t *testing.T) {
	s := newTestStore()

	s.ToggleAI()
	assert.True(t, s.Snapshot().AIOpen)
	s.ToggleAI()
	assert.False(t, s.Snapshot().AIOpen)

	s.OpenAI()
	s.OpenAI()
	assert.True(t, s.Snapshot().AIOpen)
	s.CloseAI()
	s.CloseAI()
	assert.False(t, s.Snapshot().AIOpen)

	assert.Len(t, s.Snapshot().Events, 4)
}

func TestReset(t *testing.T) {
	s := newTestStore()
	s.CompleteIntro(zodiac.Virgo)
	s.SetActiveNode("spica")
	s.OpenAI()

	s.Reset()

	snap := s.Snapshot()
	assert.Equal(t, StageIntro, snap.Stage)
	assert.False(t, snap.HasSign)
	assert.False(t, snap.IntroCompleted)
	assert.Empty(t, snap.ActiveNode)
	assert.False(t, snap.AIOpen)
	assert.Equal(t, EventReset, snap.Events[len(snap.Events)-1].Type)
}

func TestSetStageAndSign(t *testing.T) {
	s := newTestStore()
	s.SetStage(StageMain)
	s.SetSign(zodiac.Gemini)
	s.SetSign(zodiac.Gemini)

	snap := s.Snapshot()
	assert.Equal(t, StageMain, snap.Stage)
	assert.Equal(t, zodiac.Gemini, snap.Sign)
	assert.False(t, snap.IntroCompleted)
	assert.Len(t, snap.Events, 1)
}

func TestSubscribe(t *testing.T) {
	s := newTestStore()

	var got []Snapshot
	unsubscribe := s.Subscribe(func(snap Snapshot) {
		got = append(got, snap)
	})

	s.CompleteIntro(zodiac.Aries)
	s.SetHoveredNode("hamal")
	s.SetHoveredNode("hamal") // unchanged, no notification

	require.Len(t, got, 2)
	assert.Equal(t, StageMain, got[0].Stage)
	assert.Equal(t, "hamal", got[1].HoveredNode)

	unsubscribe()
	unsubscribe()
	s.OpenAI()
	assert.Len(t, got, 2, "listener called after unsubscribe")
}

func TestListenerMayMutate(t *testing.T) {
	s := newTestStore()
	s.Subscribe(func(snap Snapshot) {
		if snap.ActiveNode != "" && snap.AIOpen {
			s.CloseAI()
		}
	})

	s.OpenAI()
	s.SetActiveNode("hamal")

	assert.False(t, s.Snapshot().AIOpen)
}

func TestEventRingBuffer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxEvents = 3
	cfg.Now = fixedClock()
	s := NewStore(cfg)

	for _, node := range []string{"a", "b", "c", "d"} {
		s.SetActiveNode(node)
	}

	events := s.Snapshot().Events
	require.Len(t, events, 3)
	assert.Equal(t, "b", events[0].Node)
	assert.Equal(t, "d", events[2].Node)

	recent := s.RecentEvents(2)
	require.Len(t, recent, 2)
	assert.Equal(t, "c", recent[0].Node)
	assert.Len(t, s.RecentEvents(10), 3)
}

func TestConcurrentAccess(t *testing.T) {
	s := NewStore(DefaultConfig())
	unsubscribe := s.Subscribe(func(Snapshot) {})
	defer unsubscribe()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.ToggleAI()
				s.SetHoveredNode("x")
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = s.Snapshot()
				_ = s.RecentEvents(5)
			}
		}()
	}
	wg.Wait()

	// 2000 toggles return the panel to closed.
	assert.False(t, s.Snapshot().AIOpen)
}
