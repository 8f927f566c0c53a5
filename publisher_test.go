package ecs

import "testing"

type testMessage struct {
	Value int
}

func TestPublishSubscribe(t *testing.T) {
	p := newPublisher()
	var got int
	sub := Subscribe(p, func(m testMessage) { got = m.Value })
	defer sub.Close()

	Publish(p, testMessage{Value: 42})
	if got != 42 {
		t.Fatalf("expected handler to observe 42, got %d", got)
	}
}

func TestSubscriptionCloseStopsDelivery(t *testing.T) {
	p := newPublisher()
	calls := 0
	sub := Subscribe(p, func(m testMessage) { calls++ })

	Publish(p, testMessage{})
	sub.Close()
	Publish(p, testMessage{})

	if calls != 1 {
		t.Fatalf("expected exactly one delivery before close, got %d", calls)
	}
}

func TestSubscribeDuringDispatchObservedSameRound(t *testing.T) {
	p := newPublisher()
	var second bool
	var first Subscription
	first = Subscribe(p, func(m testMessage) {
		Subscribe(p, func(m testMessage) { second = true })
	})
	defer first.Close()

	Publish(p, testMessage{})
	if second {
		t.Fatal("a handler subscribed mid-dispatch should not fire for the message that added it")
	}

	Publish(p, testMessage{})
	if !second {
		t.Fatal("a handler subscribed mid-dispatch should fire on the next publish")
	}
}

func TestUnsubscribeDuringDispatchIsSafe(t *testing.T) {
	p := newPublisher()
	calls := 0
	var sub Subscription
	sub = Subscribe(p, func(m testMessage) {
		calls++
		sub.Close()
	})
	Subscribe(p, func(m testMessage) { calls++ })

	Publish(p, testMessage{})
	if calls != 2 {
		t.Fatalf("expected both handlers to fire on the dispatch that removes one, got %d", calls)
	}

	Publish(p, testMessage{})
	if calls != 3 {
		t.Fatalf("expected only the remaining handler to fire after removal, got %d", calls)
	}
}
