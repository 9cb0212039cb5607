package interact

import "testing"

func TestFeedPublish(t *testing.T) {
	f := NewFeed()
	var order []int

	f.Subscribe(func(Event) Result {
		order = append(order, 1)
		return Result{}
	})
	sub := f.Subscribe(func(Event) Result {
		order = append(order, 2)
		return Result{Consumed: true}
	})

	if res := f.Publish(Event{Kind: PointerMove}); !res.Consumed {
		t.Error("result should be consumed when any subscriber consumes")
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("delivery order = %v, want [1 2]", order)
	}

	sub.Unsubscribe()
	sub.Unsubscribe()
	if f.Subscribers() != 1 {
		t.Errorf("Subscribers = %d, want 1", f.Subscribers())
	}
	if res := f.Publish(Event{Kind: PointerMove}); res.Consumed {
		t.Error("remaining subscriber does not consume")
	}
}

func TestFeedUnsubscribeDuringDelivery(t *testing.T) {
	f := NewFeed()
	calls := 0
	var sub Subscription
	sub = f.Subscribe(func(Event) Result {
		calls++
		sub.Unsubscribe()
		return Result{}
	})
	f.Subscribe(func(Event) Result {
		calls++
		return Result{}
	})

	f.Publish(Event{Kind: KeyDown})
	f.Publish(Event{Kind: KeyDown})
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
		pointer  bool
	}{
		{PointerMove, "pointer-move", true},
		{PointerLeave, "pointer-leave", true},
		{KeyDown, "key-down", false},
		{KeyUp, "key-up", false},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.expected)
		}
		if got := tt.kind.IsPointer(); got != tt.pointer {
			t.Errorf("%s.IsPointer() = %v, want %v", tt.kind, got, tt.pointer)
		}
	}
}
