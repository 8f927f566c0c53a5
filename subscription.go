package ecs

// Subscription is returned by Subscribe. Closing it stops delivery;
// closing it twice, or closing the zero value, is a no-op.
type Subscription struct {
	pub    *Publisher
	typ    any
	handle int
}

// Close implements Disposable.
func (s Subscription) Close() error {
	if s.pub == nil {
		return nil
	}
	s.pub.unsubscribe(s.typ, s.handle)
	return nil
}
