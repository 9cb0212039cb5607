package overlay

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/scrub/internal/engine/buffer"
)

// Manager stores marks keyed by generated IDs.
type Manager struct {
	mu    sync.RWMutex
	marks map[string]Mark
	theme *Theme
}

// NewManager creates a new mark manager. A nil theme uses DefaultTheme.
func NewManager(theme *Theme) *Manager {
	if theme == nil {
		theme = DefaultTheme()
	}
	return &Manager{
		marks: make(map[string]Mark),
		theme: theme,
	}
}

// Theme returns the style theme.
func (m *Manager) Theme() *Theme {
	return m.theme
}

// Add stores a mark over r and returns its ID.
func (m *Manager) Add(r buffer.Range, tag string, priority Priority) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	m.marks[id] = Mark{ID: id, Range: r, Tag: tag, Priority: priority}
	return id
}

// Remove removes a mark by ID.
func (m *Manager) Remove(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.marks[id]; !ok {
		return false
	}
	delete(m.marks, id)
	return true
}

// Get returns a mark by ID.
func (m *Manager) Get(id string) (Mark, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	mk, ok := m.marks[id]
	return mk, ok
}

// Len returns the number of marks.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.marks)
}

// Clear removes all marks.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.marks = make(map[string]Mark)
}

// SpansForLine returns the spans on line, lowest priority first so later
// spans draw over earlier ones. lineLen bounds marks that continue past
// the line.
func (m *Manager) SpansForLine(line, lineLen int) []Span {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var spans []Span
	for _, mk := range m.marks {
		if !mk.ContainsLine(line) {
			continue
		}
		s := Span{StartCol: 0, EndCol: lineLen, Tag: mk.Tag, Priority: mk.Priority}
		if mk.Range.Start.Line == line {
			s.StartCol = mk.Range.Start.Column
		}
		if mk.Range.End.Line == line {
			s.EndCol = mk.Range.End.Column
		}
		if s.EndCol > s.StartCol {
			spans = append(spans, s)
		}
	}

	sort.Slice(spans, func(i, j int) bool {
		if spans[i].Priority != spans[j].Priority {
			return spans[i].Priority < spans[j].Priority
		}
		return spans[i].StartCol < spans[j].StartCol
	})
	return spans
}
