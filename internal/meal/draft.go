// Package meal tracks the items of a meal that is being composed before it is
// logged. Each item keeps the record it was looked up with next to the
// amount-adjusted record shown to the user.
package meal

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"nutrisnap/internal/nutrition"
)

// ErrItemNotFound is returned when an item id is not part of the draft.
var ErrItemNotFound = errors.New("meal: item not found")

var newID = uuid.NewString

// Item pairs the looked-up nutrition of a food with its current serving.
type Item struct {
	ID      string           `json:"id"`
	Base    nutrition.Record `json:"base"`
	Current nutrition.Record `json:"current"`
}

// Draft is an ordered set of items. It is not safe for concurrent use; each
// request loads its own copy from the session.
type Draft struct {
	Items []Item `json:"items"`
}

// Add appends a new item for base. The item starts at the base serving.
func (d *Draft) Add(base nutrition.Record) Item {
	base = base.Clone()
	base.Food = strings.TrimSpace(base.Food)
	base.AmountGrams = nutrition.ClampAmount(base.AmountGrams)

	item := Item{ID: newID(), Base: base, Current: base.Clone()}
	d.Items = append(d.Items, item)
	return item
}

// Get returns the item with id.
func (d *Draft) Get(id string) (Item, bool) {
	idx := d.index(id)
	if idx < 0 {
		return Item{}, false
	}
	return d.Items[idx], true
}

// SetAmount rescales the item from its base record. Unusable amounts fall
// back to the default serving.
func (d *Draft) SetAmount(id string, grams float64) (Item, error) {
	idx := d.index(id)
	if idx < 0 {
		return Item{}, ErrItemNotFound
	}
	current, err := nutrition.Scale(d.Items[idx].Base, nutrition.ClampAmount(grams))
	if err != nil {
		return Item{}, fmt.Errorf("meal: set amount: %w", err)
	}
	d.Items[idx].Current = current
	return d.Items[idx], nil
}

// Correct swaps the base record of an item, for example after the user picked
// a better match from a food search. The serving the user chose is kept.
func (d *Draft) Correct(id string, base nutrition.Record) (Item, error) {
	idx := d.index(id)
	if idx < 0 {
		return Item{}, ErrItemNotFound
	}
	base = base.Clone()
	base.AmountGrams = nutrition.ClampAmount(base.AmountGrams)

	current, err := nutrition.Scale(base, d.Items[idx].Current.AmountGrams)
	if err != nil {
		return Item{}, fmt.Errorf("meal: correct: %w", err)
	}
	d.Items[idx].Base = base
	d.Items[idx].Current = current
	return d.Items[idx], nil
}

// Edit replaces both records of an item with values entered by hand.
func (d *Draft) Edit(id string, record nutrition.Record) (Item, error) {
	idx := d.index(id)
	if idx < 0 {
		return Item{}, ErrItemNotFound
	}
	record = record.Clone()
	record.AmountGrams = nutrition.ClampAmount(record.AmountGrams)
	if strings.TrimSpace(record.Food) == "" {
		record.Food = d.Items[idx].Base.Food
	}
	d.Items[idx].Base = record
	d.Items[idx].Current = record.Clone()
	return d.Items[idx], nil
}

// Rename sets the food name on both records of an item. Nutrient values and
// amounts are left alone.
func (d *Draft) Rename(id, name string) (Item, error) {
	idx := d.index(id)
	if idx < 0 {
		return Item{}, ErrItemNotFound
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return d.Items[idx], nil
	}
	d.Items[idx].Base.Food = name
	d.Items[idx].Current.Food = name
	return d.Items[idx], nil
}

// Remove drops the item with id.
func (d *Draft) Remove(id string) error {
	idx := d.index(id)
	if idx < 0 {
		return ErrItemNotFound
	}
	d.Items = append(d.Items[:idx], d.Items[idx+1:]...)
	return nil
}

// Records returns the current record of every item in order.
func (d *Draft) Records() []nutrition.Record {
	out := make([]nutrition.Record, 0, len(d.Items))
	for _, item := range d.Items {
		out = append(out, item.Current)
	}
	return out
}

// Aggregate combines the current records into one meal.
func (d *Draft) Aggregate() (nutrition.AggregatedMeal, error) {
	return nutrition.Aggregate(d.Records())
}

// Len reports the number of items.
func (d *Draft) Len() int { return len(d.Items) }

// Reset removes every item.
func (d *Draft) Reset() { d.Items = nil }

func (d *Draft) index(id string) int {
	for i, item := range d.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Encode serialises the draft for session storage.
func (d *Draft) Encode() ([]byte, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("meal: encode draft: %w", err)
	}
	return data, nil
}

// Decode restores a draft written by Encode. Empty input yields an empty draft.
func Decode(data []byte) (*Draft, error) {
	draft := &Draft{}
	if len(data) == 0 {
		return draft, nil
	}
	if err := json.Unmarshal(data, draft); err != nil {
		return nil, fmt.Errorf("meal: decode draft: %w", err)
	}
	return draft, nil
}
