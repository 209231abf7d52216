package session

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/enomcdcdash/enomdash/engine"
)

// ============================================================================
// SESSION: Per-user interaction context
// ============================================================================
// Holds what survives between renders: the active tab, the last resolved
// selection and search text per view, and the random source used to pick a
// concrete member for random-reset dimensions. Reset starts over.
// ============================================================================

// Session is safe for concurrent use.
type Session struct {
	mu         sync.Mutex
	id         string
	startedAt  time.Time
	tab        string
	defaultTab string
	selections map[string]engine.Selection
	search     map[string]map[string]string

	seed   uint64
	rng    *rand.Rand
	picker *lockedPicker
}

// Snapshot is a read-only copy of the session state.
type Snapshot struct {
	ID         string                       `json:"id"`
	StartedAt  time.Time                    `json:"startedAt"`
	Tab        string                       `json:"tab"`
	Selections map[string]engine.Selection  `json:"selections"`
	Search     map[string]map[string]string `json:"search,omitempty"`
}

// New starts a session on tab. A zero seed draws one from the clock.
func New(tab string, seed uint64) *Session {
	s := &Session{defaultTab: tab, seed: seed}
	s.reset()
	return s
}

func (s *Session) reset() {
	seed := s.seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	s.id = uuid.NewString()
	s.startedAt = time.Now().UTC()
	s.tab = s.defaultTab
	s.selections = make(map[string]engine.Selection)
	s.search = make(map[string]map[string]string)
	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	s.rng = rand.New(src)
	s.picker = &lockedPicker{r: s.rng, src: src}
}

// Reset discards all state and starts a fresh session with a new ID.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
}

func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

func (s *Session) Tab() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tab
}

// SetTab switches the active view.
func (s *Session) SetTab(tab string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tab = tab
}

// Selection returns a copy of the stored selection for view merged with
// overrides. Overrides win; stored values for other dimensions are kept and
// left for the cascade to validate.
func (s *Session) Selection(view string, overrides engine.Selection) engine.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.selections[view].Clone()
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// Search returns a copy of the stored search text for view merged with
// overrides. A blank override clears the stored text.
func (s *Session) Search(view string, overrides map[string]string) map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.search[view])+len(overrides))
	for k, v := range s.search[view] {
		out[k] = v
	}
	for k, v := range overrides {
		if v == "" {
			delete(out, k)
			continue
		}
		out[k] = v
	}
	return out
}

// Remember stores the resolved selection and search text after a render.
func (s *Session) Remember(view string, sel engine.Selection, search map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selections[view] = sel.Clone()
	kept := make(map[string]string, len(search))
	for k, v := range search {
		if v != "" {
			kept[k] = v
		}
	}
	s.search[view] = kept
}

// Picker returns the session's random source for random-reset dimensions.
func (s *Session) Picker() engine.Picker {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.picker
}

// PreviewPicker returns a copy of the session's random source. Draws from
// it leave the session untouched and match what the next render would
// draw for the same inputs.
func (s *Session) PreviewPicker() engine.Picker {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.picker.fork()
}

// Snapshot copies the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		ID:         s.id,
		StartedAt:  s.startedAt,
		Tab:        s.tab,
		Selections: make(map[string]engine.Selection, len(s.selections)),
		Search:     make(map[string]map[string]string, len(s.search)),
	}
	for view, sel := range s.selections {
		snap.Selections[view] = sel.Clone()
	}
	for view, search := range s.search {
		if len(search) == 0 {
			continue
		}
		cp := make(map[string]string, len(search))
		for k, v := range search {
			cp[k] = v
		}
		snap.Search[view] = cp
	}
	return snap
}

// lockedPicker serializes draws from a *rand.Rand, which is not safe for
// concurrent use.
type lockedPicker struct {
	mu  sync.Mutex
	r   *rand.Rand
	src *rand.PCG
}

func (p *lockedPicker) IntN(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.r.IntN(n)
}

func (p *lockedPicker) fork() *rand.Rand {
	p.mu.Lock()
	defer p.mu.Unlock()
	src := *p.src
	return rand.New(&src)
}
