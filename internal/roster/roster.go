// Package roster keeps the passengers booked on one flight in booking order.
package roster

import (
	"container/list"
	"fmt"

	"github.com/elson2121/Airline-Management-System/shared/models"
)

// Roster is an insertion-ordered set of passengers keyed by government id.
// Not safe for concurrent use.
type Roster struct {
	order *list.List
	index map[string]*list.Element
}

func New() *Roster {
	return &Roster{
		order: list.New(),
		index: make(map[string]*list.Element),
	}
}

// Add appends p. A passenger with the same id already on the roster is rejected.
func (r *Roster) Add(p models.Passenger) error {
	if _, ok := r.index[p.ID]; ok {
		return fmt.Errorf("passenger %s: %w", p.ID, models.ErrDuplicateIdentity)
	}
	r.index[p.ID] = r.order.PushBack(p)
	return nil
}

// RemoveByIdentity unlinks the passenger with the given id.
func (r *Roster) RemoveByIdentity(id string) (models.Passenger, bool) {
	el, ok := r.index[id]
	if !ok {
		return models.Passenger{}, false
	}
	delete(r.index, id)
	return r.order.Remove(el).(models.Passenger), true
}

func (r *Roster) Get(id string) (models.Passenger, bool) {
	el, ok := r.index[id]
	if !ok {
		return models.Passenger{}, false
	}
	return el.Value.(models.Passenger), true
}

func (r *Roster) Contains(id string) bool {
	_, ok := r.index[id]
	return ok
}

// Replace overwrites the entry for id in place, keeping its position. The
// replacement may carry a different id as long as that id is not taken by
// another passenger.
func (r *Roster) Replace(id string, p models.Passenger) error {
	el, ok := r.index[id]
	if !ok {
		return fmt.Errorf("passenger %s not on roster", id)
	}
	if p.ID != id {
		if _, taken := r.index[p.ID]; taken {
			return fmt.Errorf("passenger %s: %w", p.ID, models.ErrDuplicateIdentity)
		}
		delete(r.index, id)
		r.index[p.ID] = el
	}
	el.Value = p
	return nil
}

// Passengers returns a copy of the roster in insertion order.
func (r *Roster) Passengers() []models.Passenger {
	out := make([]models.Passenger, 0, r.order.Len())
	for el := r.order.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value.(models.Passenger))
	}
	return out
}

func (r *Roster) Len() int {
	return r.order.Len()
}

func (r *Roster) Clear() {
	r.order.Init()
	r.index = make(map[string]*list.Element)
}
