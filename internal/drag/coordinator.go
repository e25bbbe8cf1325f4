// Package drag turns drag gestures over an ordered list into (oldIndex, newIndex) reorder calls.
//
// A Coordinator knows nothing about what it reorders. Each instance owns a namespace so that
// several lists on screen at once (the section list and each section's items) never act on
// each other's drag events.
//
// Input reaches a Coordinator through a front end: a Tracker wraps a PointerSensor or
// TouchSensor for press/move/release input, and a KeyboardSensor maps tcell key events.
// The sections CLI replays keys through a KeyboardSensor (sections reorder --keys).
package drag

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// ReorderFunc receives the source and target index of a completed drag.
type ReorderFunc func(oldIndex, newIndex int)

// State is the coordinator's gesture state.
type State int

const (
	// Idle means no drag is in progress
	Idle State = iota
	// Dragging means an item has been picked up
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// EndEvent describes a drop. OverID is empty when the item was released outside any drop target.
type EndEvent struct {
	ActiveID string
	OverID   string
}

// Option configures a Coordinator.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Coordinator tracks the drag state of one list of items of type T.
// It is not safe for concurrent use.
type Coordinator[T any] struct {
	namespace string
	prefix    string
	items     []T
	ids       []string
	onReorder ReorderFunc
	logger    *zap.Logger

	activeID   string
	active     bool
	activeItem *T
}

// New creates a coordinator for items in namespace. onReorder may be nil.
func New[T any](namespace string, items []T, onReorder ReorderFunc, opts ...Option) *Coordinator[T] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	c := &Coordinator[T]{
		namespace: namespace,
		prefix:    namespace + "-item-",
		onReorder: onReorder,
		logger:    o.logger.With(zap.String("component", "drag"), zap.String("namespace", namespace)),
	}
	c.SetItems(items)
	return c
}

// Namespace returns the id namespace of this coordinator.
func (c *Coordinator[T]) Namespace() string {
	return c.namespace
}

// ItemID returns the stable identifier of the item at index.
func (c *Coordinator[T]) ItemID(index int) string {
	return c.prefix + strconv.Itoa(index)
}

// IDs returns the identifiers of the current items, in order.
func (c *Coordinator[T]) IDs() []string {
	return c.ids
}

// Items returns the current items.
func (c *Coordinator[T]) Items() []T {
	return c.items
}

// SetItems replaces the item list. Identifiers are regenerated only when the count changes.
func (c *Coordinator[T]) SetItems(items []T) {
	c.items = items
	if len(c.ids) == len(items) && c.ids != nil {
		return
	}
	ids := make([]string, len(items))
	for i := range items {
		ids[i] = c.ItemID(i)
	}
	c.ids = ids
}

// ParseID extracts the item index from id. ok is false for ids of another namespace,
// malformed ids and indices past the end of the list.
func (c *Coordinator[T]) ParseID(id string) (int, bool) {
	rest, found := strings.CutPrefix(id, c.prefix)
	if !found {
		return 0, false
	}
	index, err := strconv.Atoi(rest)
	if err != nil || index < 0 || index >= len(c.items) {
		return 0, false
	}
	return index, true
}

// State returns Idle or Dragging.
func (c *Coordinator[T]) State() State {
	if c.active {
		return Dragging
	}
	return Idle
}

// ActiveID returns the identifier of the dragged item. ok is false when idle.
func (c *Coordinator[T]) ActiveID() (string, bool) {
	return c.activeID, c.active
}

// ActiveItem returns a snapshot of the dragged item for rendering a drag preview.
// ok is false when idle or when the active id belongs to another namespace.
func (c *Coordinator[T]) ActiveItem() (T, bool) {
	if c.activeItem == nil {
		var zero T
		return zero, false
	}
	return *c.activeItem, true
}

// DragStart records id as the active item. Ids from another namespace are recorded
// but produce no preview.
func (c *Coordinator[T]) DragStart(id string) {
	c.activeID = id
	c.active = true
	c.activeItem = nil

	index, ok := c.ParseID(id)
	if !ok {
		c.logger.Debug("drag started on foreign item", zap.String("id", id))
		return
	}
	item := c.items[index]
	c.activeItem = &item
}

// DragCancel abandons the drag without reordering.
func (c *Coordinator[T]) DragCancel() {
	c.reset()
}

// DragEnd finishes the drag. The reorder callback runs only when both ids belong to this
// namespace and point at different indices. It reports whether a reorder was issued.
func (c *Coordinator[T]) DragEnd(ev EndEvent) bool {
	defer c.reset()

	if ev.OverID == "" {
		return false
	}
	from, ok := c.ParseID(ev.ActiveID)
	if !ok {
		return false
	}
	to, ok := c.ParseID(ev.OverID)
	if !ok || from == to {
		return false
	}

	c.logger.Debug("reorder", zap.Int("old_index", from), zap.Int("new_index", to))
	if c.onReorder != nil {
		c.onReorder(from, to)
	}
	return true
}

func (c *Coordinator[T]) reset() {
	c.activeID = ""
	c.active = false
	c.activeItem = nil
}
