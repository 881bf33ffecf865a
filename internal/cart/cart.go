// Package cart implements the shopping cart reducer. Every operation is a
// pure function returning a new Cart; the input is never modified.
package cart

import (
	"encoding/json"

	"slay-store/internal/model"
)

// Line is one cart entry. Lines with the same ID, Size and Customizations
// are merged.
type Line struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Price          float64        `json:"price"`
	Image          string         `json:"image,omitempty"`
	Size           string         `json:"size,omitempty"`
	Quantity       int            `json:"quantity"`
	Customizations map[string]any `json:"customizations,omitempty"`
}

// Cart is an ordered list of lines.
type Cart []Line

// primitiveOnly returns a copy of m without nested objects, arrays or nulls.
func primitiveOnly(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		switch v.(type) {
		case string, bool, float64, float32, int, int32, int64, uint, uint32, uint64, json.Number:
			out[k] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// customizationKey is a stable serialization of m. encoding/json sorts map
// keys, so equal maps yield equal keys.
func customizationKey(m map[string]any) string {
	if len(m) == 0 {
		return ""
	}
	b, err := json.Marshal(m)
	if err != nil {
		return ""
	}
	return string(b)
}

func normalizeLine(l Line) Line {
	l.Customizations = primitiveOnly(l.Customizations)
	if l.Quantity < 1 {
		l.Quantity = 1
	}
	return l
}

func (c Cart) clone() Cart {
	out := make(Cart, len(c))
	copy(out, c)
	return out
}

// Add merges item into the first line with the same id, size and
// customizations, or appends it as a new line. A quantity below one counts
// as one.
func Add(c Cart, item Line) Cart {
	item = normalizeLine(item)
	key := customizationKey(item.Customizations)

	out := c.clone()
	for i, l := range out {
		if l.ID == item.ID && l.Size == item.Size && customizationKey(l.Customizations) == key {
			out[i].Quantity += item.Quantity
			return out
		}
	}
	return append(out, item)
}

func matches(l Line, id string, size *string) bool {
	if l.ID != id {
		return false
	}
	return size == nil || l.Size == *size
}

// Remove drops the line matching id and size. With a nil size every line
// for id is removed, whatever its size.
func Remove(c Cart, id string, size *string) Cart {
	out := make(Cart, 0, len(c))
	for _, l := range c {
		if !matches(l, id, size) {
			out = append(out, l)
		}
	}
	return out
}

// UpdateQuantity sets the quantity of the matching lines, using the same
// matching rule as Remove. A quantity of zero or less removes them.
func UpdateQuantity(c Cart, id string, size *string, qty int) Cart {
	if qty <= 0 {
		return Remove(c, id, size)
	}
	out := c.clone()
	for i, l := range out {
		if matches(l, id, size) {
			out[i].Quantity = qty
		}
	}
	return out
}

// Normalize folds lines through Add, merging duplicates and dropping lines
// without an id or a positive quantity.
func Normalize(lines []Line) Cart {
	out := Cart{}
	for _, l := range lines {
		if l.ID == "" || l.Quantity <= 0 {
			continue
		}
		out = Add(out, l)
	}
	return out
}

// Count returns the total number of units.
func (c Cart) Count() int {
	n := 0
	for _, l := range c {
		n += l.Quantity
	}
	return n
}

// Subtotal returns the sum of price times quantity.
func (c Cart) Subtotal() float64 {
	var total float64
	for _, l := range c {
		total += l.Price * float64(l.Quantity)
	}
	return total
}

// ToOrderItems snapshots the cart as order line items.
func (c Cart) ToOrderItems() []model.OrderItem {
	items := make([]model.OrderItem, 0, len(c))
	for _, l := range c {
		var custom map[string]any
		if len(l.Customizations) > 0 {
			custom = make(map[string]any, len(l.Customizations))
			for k, v := range l.Customizations {
				custom[k] = v
			}
		}
		items = append(items, model.OrderItem{
			ProductID:      l.ID,
			ProductName:    l.Name,
			Price:          l.Price,
			Quantity:       l.Quantity,
			Size:           l.Size,
			Image:          l.Image,
			Customizations: custom,
		})
	}
	return items
}
