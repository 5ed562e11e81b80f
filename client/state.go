package client

import "go.mongodb.org/mongo-driver/bson/primitive"

// Identifiable is implemented by every entity view the API returns.
type Identifiable interface {
	GetID() primitive.ObjectID
}

// ListState is the local mirror of one entity list plus the current
// selection.
type ListState[T Identifiable] struct {
	Items    []T
	Selected *T
}

// Reset replaces the items with a freshly loaded list. A selection that is
// no longer present is dropped.
func (s *ListState[T]) Reset(items []T) {
	s.Items = append([]T(nil), items...)
	if s.Selected == nil {
		return
	}
	if _, ok := s.Find((*s.Selected).GetID()); !ok {
		s.Selected = nil
	}
}

// Insert puts a newly created item at the head of the list.
func (s *ListState[T]) Insert(item T) {
	s.Items = append([]T{item}, s.Items...)
}

// Replace swaps the item with the same id in place, refreshing the
// selection too. Unknown ids are ignored.
func (s *ListState[T]) Replace(item T) {
	id := item.GetID()
	for i := range s.Items {
		if s.Items[i].GetID() == id {
			s.Items[i] = item
			break
		}
	}
	if s.Selected != nil && (*s.Selected).GetID() == id {
		selected := item
		s.Selected = &selected
	}
}

// Remove filters the item out by id and clears the selection if it pointed
// at it.
func (s *ListState[T]) Remove(id primitive.ObjectID) {
	kept := s.Items[:0]
	for _, item := range s.Items {
		if item.GetID() != id {
			kept = append(kept, item)
		}
	}
	s.Items = kept
	if s.Selected != nil && (*s.Selected).GetID() == id {
		s.Selected = nil
	}
}

func (s *ListState[T]) Find(id primitive.ObjectID) (T, bool) {
	for _, item := range s.Items {
		if item.GetID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Select marks the item with id as selected. It reports false if the id is
// not in the list.
func (s *ListState[T]) Select(id primitive.ObjectID) bool {
	item, ok := s.Find(id)
	if !ok {
		return false
	}
	s.Selected = &item
	return true
}

func (s *ListState[T]) ClearSelection() {
	s.Selected = nil
}

func (s ListState[T]) clone() ListState[T] {
	out := ListState[T]{Items: append([]T(nil), s.Items...)}
	if s.Selected != nil {
		selected := *s.Selected
		out.Selected = &selected
	}
	return out
}
