package drag

import (
	"github.com/gdamore/tcell/v2"
)

// KeyboardSensor drives a Coordinator from key presses so lists can be reordered without a
// pointer. Arrows move focus; Space or Enter picks the focused item up; while holding it the
// arrows move the drop position one slot at a time (up/left earlier, down/right later);
// Space or Enter drops it and Escape cancels.
type KeyboardSensor[T any] struct {
	coordinator *Coordinator[T]
	focus       int
	over        int
	holding     bool
}

// NewKeyboardSensor creates a keyboard sensor with focus on the first item.
func NewKeyboardSensor[T any](coordinator *Coordinator[T]) *KeyboardSensor[T] {
	return &KeyboardSensor[T]{coordinator: coordinator}
}

// Focus returns the index of the focused item.
func (k *KeyboardSensor[T]) Focus() int {
	return k.focus
}

// SetFocus moves focus to index, clamped to the list.
func (k *KeyboardSensor[T]) SetFocus(index int) {
	k.focus = k.clampIndex(index)
}

// Over returns the current drop position while an item is held.
func (k *KeyboardSensor[T]) Over() (int, bool) {
	return k.over, k.holding
}

// HandleKey applies ev and reports whether the key was consumed.
func (k *KeyboardSensor[T]) HandleKey(ev *tcell.EventKey) bool {
	count := len(k.coordinator.Items())
	if count == 0 {
		return false
	}

	switch {
	case isPickKey(ev):
		if k.holding {
			k.drop()
		} else {
			k.pickUp()
		}
		return true
	case ev.Key() == tcell.KeyEscape:
		if !k.holding {
			return false
		}
		k.holding = false
		k.coordinator.DragCancel()
		return true
	}

	step, ok := arrowStep(ev)
	if !ok {
		return false
	}
	if k.holding {
		k.over = k.clampIndex(k.over + step)
	} else {
		k.focus = k.clampIndex(k.focus + step)
	}
	return true
}

func (k *KeyboardSensor[T]) pickUp() {
	k.focus = k.clampIndex(k.focus)
	k.over = k.focus
	k.holding = true
	k.coordinator.DragStart(k.coordinator.ItemID(k.focus))
}

func (k *KeyboardSensor[T]) drop() {
	k.holding = false
	k.coordinator.DragEnd(EndEvent{
		ActiveID: k.coordinator.ItemID(k.focus),
		OverID:   k.coordinator.ItemID(k.over),
	})
	k.focus = k.over
}

func (k *KeyboardSensor[T]) clampIndex(index int) int {
	last := len(k.coordinator.Items()) - 1
	if index > last {
		index = last
	}
	if index < 0 {
		index = 0
	}
	return index
}

func isPickKey(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyEnter || (ev.Key() == tcell.KeyRune && ev.Rune() == ' ')
}

func arrowStep(ev *tcell.EventKey) (int, bool) {
	switch ev.Key() {
	case tcell.KeyUp, tcell.KeyLeft:
		return -1, true
	case tcell.KeyDown, tcell.KeyRight:
		return 1, true
	default:
		return 0, false
	}
}
