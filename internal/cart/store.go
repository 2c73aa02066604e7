// Package cart owns the ordered list of configured panels for the active
// project and keeps it mirrored into a kv.Backend.
package cart

import (
	"strings"
	"sync"
	"time"

	"github.com/jakoblorz/go-panelcart/internal/kv"
	"github.com/jakoblorz/go-panelcart/internal/logging"
	"github.com/jakoblorz/go-panelcart/internal/models"
	"go.uber.org/zap"
)

// EventKind identifies what changed in a Store
type EventKind int

const (
	// ItemsChanged fires after any mutation of the item list or project code
	ItemsChanged EventKind = iota
	// CountingChanged fires when IsCounting flips
	CountingChanged
)

// Event is delivered to subscribers after a change.
type Event struct {
	Kind     EventKind
	Counting bool
}

// Listener receives store events. Listeners run outside the store lock and
// may call back into the store.
type Listener func(Event)

type subscription struct {
	id int
	fn Listener
}

// Store is the project cart. All mutations are synchronous; persistence
// failures are logged and swallowed.
type Store struct {
	mu          sync.Mutex
	backend     kv.Backend
	logger      *zap.Logger
	items       []models.CartItem
	projectCode string
	pulse       *pulse

	pulseDuration time.Duration
	defaults      []models.CartItem

	listeners []subscription
	nextSubID int
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for persistence diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		s.logger = logging.OrNop(logger)
	}
}

// WithPulseDuration overrides DefaultPulseDuration.
func WithPulseDuration(d time.Duration) Option {
	return func(s *Store) {
		s.pulseDuration = d
	}
}

// WithDefaults replaces the fallback list used when storage holds no items.
func WithDefaults(items []models.CartItem) Option {
	return func(s *Store) {
		s.defaults = items
	}
}

// New creates a Store and restores the current item list from backend,
// falling back to the defaults when it is missing or unreadable.
func New(backend kv.Backend, options ...Option) *Store {
	s := &Store{
		backend:       backend,
		logger:        zap.NewNop(),
		pulseDuration: DefaultPulseDuration,
		defaults:      DefaultItems(),
	}

	for _, option := range options {
		option(s)
	}

	s.pulse = newPulse(s.pulseDuration, func(active bool) {
		s.notify(Event{Kind: CountingChanged, Counting: active})
	})

	items, ok := readItems(s.backend, s.logger, CurrentItemsKey)
	if !ok {
		items = cloneItems(s.defaults)
	}
	s.items = items

	return s
}

// Close stops the pending IsCounting reset, if any.
func (s *Store) Close() {
	s.pulse.Stop()
}

// Subscribe registers fn for change events and returns a function that
// removes it.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSubID++
	id := s.nextSubID
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.listeners {
			if sub.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) notify(ev Event) {
	s.mu.Lock()
	listeners := make([]Listener, len(s.listeners))
	for i, sub := range s.listeners {
		listeners[i] = sub.fn
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(ev)
	}
}

// Items returns a copy of the current item list in display order.
func (s *Store) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneItems(s.items)
}

// Len returns the number of items.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// ProjectCode returns the active project code, or "" when none is selected.
func (s *Store) ProjectCode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.projectCode
}

// IsCounting reports whether an item was added within the pulse window.
func (s *Store) IsCounting() bool {
	return s.pulse.Active()
}

// ProjCount is the sum of quantities across all items.
func (s *Store) ProjCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// Tally returns the persisted per-panel-type quantity tally.
func (s *Store) Tally() models.Tally {
	s.mu.Lock()
	defer s.mu.Unlock()
	return readTally(s.backend, s.logger)
}

// SetProjectCode activates the project stored under code, or clears the
// item list when code is empty.
func (s *Store) SetProjectCode(code string) {
	code = strings.TrimSpace(code)

	s.mu.Lock()
	if code == "" {
		s.items = []models.CartItem{}
	} else {
		items, ok := readItems(s.backend, s.logger, ProjectKey(code))
		if !ok {
			items = []models.CartItem{}
		}
		s.items = items
	}
	s.projectCode = code
	s.persistLocked()
	s.mu.Unlock()

	s.notify(Event{Kind: ItemsChanged})
}

// AddToCart appends item, raises IsCounting and adds its quantity to the tally.
func (s *Store) AddToCart(item models.CartItem) {
	s.mu.Lock()
	s.items = append(s.items, item.Clone())
	s.adjustTallyLocked(item.Type, item.Quantity)
	s.persistLocked()
	s.mu.Unlock()

	s.pulse.Trigger()
	s.notify(Event{Kind: ItemsChanged})
}

// UpdateQuantity sets the quantity of the item at index. A quantity of zero
// or less removes the item.
func (s *Store) UpdateQuantity(index, quantity int) error {
	s.mu.Lock()
	if err := checkIndex("update quantity", index, len(s.items)); err != nil {
		s.mu.Unlock()
		return err
	}

	if quantity <= 0 {
		s.removeLocked(index)
	} else {
		item := &s.items[index]
		delta := quantity - item.Quantity
		item.Quantity = quantity
		s.adjustTallyLocked(item.Type, delta)
	}
	s.persistLocked()
	s.mu.Unlock()

	s.notify(Event{Kind: ItemsChanged})
	return nil
}

// RemoveFromCart deletes the item at index; later items shift left.
func (s *Store) RemoveFromCart(index int) error {
	s.mu.Lock()
	if err := checkIndex("remove", index, len(s.items)); err != nil {
		s.mu.Unlock()
		return err
	}

	s.removeLocked(index)
	s.persistLocked()
	s.mu.Unlock()

	s.notify(Event{Kind: ItemsChanged})
	return nil
}

// ReorderPanels rebuilds the list so that position i holds the item
// previously at newOrder[i]. newOrder must be a permutation of the indices.
func (s *Store) ReorderPanels(newOrder []int) error {
	s.mu.Lock()
	if err := checkPermutation(newOrder, len(s.items)); err != nil {
		s.mu.Unlock()
		return err
	}

	reordered := make([]models.CartItem, len(newOrder))
	for i, from := range newOrder {
		reordered[i] = s.items[from]
	}
	s.items = reordered
	s.persistLocked()
	s.mu.Unlock()

	s.notify(Event{Kind: ItemsChanged})
	return nil
}

// UpdatePanel replaces the item at index. A quantity change applies the
// signed delta to the tally like UpdateQuantity; a type change moves the old
// quantity out and the new quantity in.
func (s *Store) UpdatePanel(index int, updated models.CartItem) error {
	s.mu.Lock()
	if err := checkIndex("update panel", index, len(s.items)); err != nil {
		s.mu.Unlock()
		return err
	}

	old := s.items[index]
	s.items[index] = updated.Clone()
	switch {
	case models.TallyKey(old.Type) != models.TallyKey(updated.Type):
		tally := readTally(s.backend, s.logger)
		tally.Adjust(old.Type, -old.Quantity)
		tally.Adjust(updated.Type, updated.Quantity)
		writeTally(s.backend, s.logger, tally)
	case old.Quantity != updated.Quantity:
		s.adjustTallyLocked(updated.Type, updated.Quantity-old.Quantity)
	}
	s.persistLocked()
	s.mu.Unlock()

	s.notify(Event{Kind: ItemsChanged})
	return nil
}

// ClearProject empties the list, deselects the project and deletes the tally.
func (s *Store) ClearProject() {
	s.mu.Lock()
	s.items = []models.CartItem{}
	s.projectCode = ""
	if err := s.backend.Remove(TallyKey); err != nil {
		s.logger.Warn("failed to remove tally", zap.String("key", TallyKey), zap.Error(err))
	}
	s.persistLocked()
	s.mu.Unlock()

	s.notify(Event{Kind: ItemsChanged})
}

func (s *Store) removeLocked(index int) {
	removed := s.items[index]
	s.items = append(s.items[:index:index], s.items[index+1:]...)
	s.adjustTallyLocked(removed.Type, -removed.Quantity)
}

func (s *Store) adjustTallyLocked(panelType string, delta int) {
	tally := readTally(s.backend, s.logger)
	tally.Adjust(panelType, delta)
	writeTally(s.backend, s.logger, tally)
}

// persistLocked mirrors the list into the current key and, while a project
// is active, into the project key. The project key is written even when
// the list is empty so that re-selecting the project does not restore
// removed items.
func (s *Store) persistLocked() {
	writeItems(s.backend, s.logger, CurrentItemsKey, s.items)
	if s.projectCode != "" {
		writeItems(s.backend, s.logger, ProjectKey(s.projectCode), s.items)
	}
}

func cloneItems(items []models.CartItem) []models.CartItem {
	out := make([]models.CartItem, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}
