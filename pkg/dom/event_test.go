package dom

import "testing"

// buildTree returns grandparent -> parent -> leaf.
func buildTree() (*Element, *Element, *Element) {
	grand := NewElement("div")
	parent := NewElement("form")
	leaf := NewElement("input")
	grand.AppendChild(parent)
	parent.AppendChild(leaf)
	return grand, parent, leaf
}

func TestDispatchBubbles(t *testing.T) {
	grand, parent, leaf := buildTree()

	var order []string
	leaf.AddEventListener("change", func(*Event) { order = append(order, "leaf") })
	parent.AddEventListener("change", func(*Event) { order = append(order, "parent") })
	grand.AddEventListener("change", func(*Event) { order = append(order, "grand") })

	leaf.DispatchEvent(NewEvent("change", WithBubbles(true)))

	want := []string{"leaf", "parent", "grand"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %s, want %s", i, order[i], want[i])
		}
	}
}

func TestDispatchNonBubblingStaysAtTarget(t *testing.T) {
	_, parent, leaf := buildTree()

	parentCalled := false
	parent.AddEventListener("change", func(*Event) { parentCalled = true })

	leaf.DispatchEvent(NewEvent("change"))
	if parentCalled {
		t.Error("non-bubbling event reached parent")
	}
}

func TestStopPropagationFinishesCurrentLevel(t *testing.T) {
	_, parent, leaf := buildTree()

	var calls []string
	leaf.AddEventListener("input", func(e *Event) {
		calls = append(calls, "first")
		e.StopPropagation()
	})
	leaf.AddEventListener("input", func(*Event) { calls = append(calls, "second") })
	parent.AddEventListener("input", func(*Event) { calls = append(calls, "parent") })

	leaf.DispatchEvent(NewEvent("input", WithBubbles(true)))

	if len(calls) != 2 || calls[1] != "second" {
		t.Errorf("calls = %v, want [first second]", calls)
	}
}

func TestStopImmediatePropagationSkipsSameLevel(t *testing.T) {
	_, _, leaf := buildTree()

	var calls []string
	leaf.AddEventListener("input", func(e *Event) {
		calls = append(calls, "first")
		e.StopImmediatePropagation()
	})
	leaf.AddEventListener("input", func(*Event) { calls = append(calls, "second") })

	leaf.DispatchEvent(NewEvent("input", WithBubbles(true)))

	if len(calls) != 1 {
		t.Errorf("calls = %v, want [first]", calls)
	}
}

func TestPreventDefaultRequiresCancelable(t *testing.T) {
	el := NewElement("a")
	el.AddEventListener("click", func(e *Event) { e.PreventDefault() })

	if ok := el.DispatchEvent(NewEvent("click", WithCancelable(true))); ok {
		t.Error("DispatchEvent = true, want false for prevented default")
	}
	if ok := el.DispatchEvent(NewEvent("click")); !ok {
		t.Error("DispatchEvent = false for non-cancelable event")
	}
}

func TestTargetAndCurrentTarget(t *testing.T) {
	_, parent, leaf := buildTree()

	var target, current *Element
	parent.AddEventListener("change", func(e *Event) {
		target = e.Target()
		current = e.CurrentTarget()
	})

	ev := NewEvent("change", WithBubbles(true))
	leaf.DispatchEvent(ev)

	if target != leaf {
		t.Errorf("Target = %v, want leaf", target)
	}
	if current != parent {
		t.Errorf("CurrentTarget = %v, want parent", current)
	}
	if ev.CurrentTarget() != nil {
		t.Error("CurrentTarget not cleared after dispatch")
	}
}

func TestRemoveListener(t *testing.T) {
	el := NewElement("div")
	calls := 0
	off := el.AddEventListener("change", func(*Event) { calls++ })

	el.DispatchEvent(NewEvent("change"))
	off()
	el.DispatchEvent(NewEvent("change"))

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
