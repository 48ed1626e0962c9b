package collider

type subscriber struct {
	id int
	fn TriggerFunc
}

// subscribers is an ordered listener list. Dispatch works on a snapshot so
// listeners may unsubscribe while being called.
type subscribers struct {
	nextID int
	list   []subscriber
}

func (s *subscribers) add(fn TriggerFunc) func() {
	if fn == nil {
		return func() {}
	}
	s.nextID++
	id := s.nextID
	s.list = append(s.list, subscriber{id: id, fn: fn})
	return func() { s.remove(id) }
}

func (s *subscribers) remove(id int) {
	for i, sub := range s.list {
		if sub.id == id {
			s.list = append(s.list[:i:i], s.list[i+1:]...)
			return
		}
	}
}

func (s *subscribers) dispatch(other, local Collider) {
	if len(s.list) == 0 {
		return
	}
	snapshot := append([]subscriber(nil), s.list...)
	for _, sub := range snapshot {
		sub.fn(other, local)
	}
}

func (s *subscribers) clear() {
	s.list = nil
}
