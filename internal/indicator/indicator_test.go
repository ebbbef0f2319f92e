package indicator

import "testing"

func TestLog_Display(t *testing.T) {
	t.Run("tracks alert transitions", func(t *testing.T) {
		l := NewLog()

		l.Display(Alert, Yellow)
		if !l.lastAlert {
			t.Error("alert pattern should set the alert state")
		}

		l.Display(Clear, Yellow)
		if l.lastAlert {
			t.Error("clear pattern should reset the alert state")
		}
	})

	t.Run("repeated pattern keeps state", func(t *testing.T) {
		l := NewLog()
		l.Display(Alert, Yellow)
		l.Display(Alert, Yellow)
		if !l.lastAlert || !l.hasState {
			t.Error("repeated alert should remain in alert state")
		}
	})

	t.Run("any lit pixel counts as alert", func(t *testing.T) {
		l := NewLog()
		var p Pattern
		p[NumPixels-1] = 0.5
		l.Display(p, Yellow)
		if !l.lastAlert {
			t.Error("non-blank pattern should count as alert")
		}
	})
}
