package station

import (
	"testing"
	"time"
)

// testNavigator returns a navigator with a controllable clock that starts
// well past the debounce window.
func testNavigator(debounce time.Duration) (*Navigator, *time.Time) {
	n := NewNavigator(debounce)
	now := time.Unix(1000, 0)
	n.now = func() time.Time { return now }
	return n, &now
}

func TestNavigator_Press(t *testing.T) {
	t.Run("next wraps from last page to first", func(t *testing.T) {
		n, now := testNavigator(0)
		for i := 0; i < len(Pages); i++ {
			n.Press(ButtonNext)
			*now = now.Add(time.Second)
		}
		if got := n.Current(); got != Pages[0] {
			t.Errorf("after %d next presses Current() = %q; want %q", len(Pages), got, Pages[0])
		}
	})

	t.Run("prev wraps from first page to last", func(t *testing.T) {
		n, _ := testNavigator(0)
		n.Press(ButtonPrev)
		if got, want := n.Current(), Pages[len(Pages)-1]; got != want {
			t.Errorf("Current() = %q; want %q", got, want)
		}
	})

	t.Run("index stays valid over arbitrary sequences", func(t *testing.T) {
		n, now := testNavigator(0)
		seq := []Button{ButtonPrev, ButtonPrev, ButtonNext, ButtonPrev, ButtonNext, ButtonNext, ButtonNext}
		for _, b := range seq {
			n.Press(b)
			*now = now.Add(time.Second)
			if n.index < 0 || n.index >= len(Pages) {
				t.Fatalf("index %d out of range [0,%d)", n.index, len(Pages))
			}
		}
	})

	t.Run("second press inside debounce window is ignored", func(t *testing.T) {
		n, now := testNavigator(500 * time.Millisecond)
		n.Press(ButtonNext)
		if _, ok := n.PollAndClear(); !ok {
			t.Fatal("first press should arm a pending target")
		}

		*now = now.Add(200 * time.Millisecond)
		n.Press(ButtonNext)
		if got, want := n.Current(), Pages[1]; got != want {
			t.Errorf("Current() = %q; want %q (debounced press must not move)", got, want)
		}
		if target, ok := n.PollAndClear(); ok {
			t.Errorf("PollAndClear() = %q; want no pending target after debounced press", target)
		}
	})

	t.Run("press after debounce window is accepted", func(t *testing.T) {
		n, now := testNavigator(500 * time.Millisecond)
		n.Press(ButtonNext)
		*now = now.Add(500 * time.Millisecond)
		n.Press(ButtonNext)
		if got, want := n.Current(), Pages[2]; got != want {
			t.Errorf("Current() = %q; want %q", got, want)
		}
	})
}

func TestNavigator_PollAndClear(t *testing.T) {
	t.Run("no press means no target", func(t *testing.T) {
		n, _ := testNavigator(0)
		if target, ok := n.PollAndClear(); ok {
			t.Errorf("PollAndClear() = %q; want none", target)
		}
	})

	t.Run("target is delivered exactly once", func(t *testing.T) {
		n, _ := testNavigator(0)
		n.Press(ButtonNext)

		target, ok := n.PollAndClear()
		if !ok || target != Pages[1] {
			t.Errorf("first PollAndClear() = %q, %v; want %q, true", target, ok, Pages[1])
		}
		if target, ok := n.PollAndClear(); ok {
			t.Errorf("second PollAndClear() = %q; want none", target)
		}
	})

	t.Run("newer press overwrites undelivered target", func(t *testing.T) {
		n, now := testNavigator(0)
		n.Press(ButtonNext)
		*now = now.Add(time.Second)
		n.Press(ButtonNext)

		target, ok := n.PollAndClear()
		if !ok || target != Pages[2] {
			t.Errorf("PollAndClear() = %q, %v; want %q, true (last press wins)", target, ok, Pages[2])
		}
	})
}
