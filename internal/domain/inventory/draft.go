package inventory

import (
	"stockdash/internal/core/apperror"
	"stockdash/internal/core/types"
)

// Draft field names accepted by EditDraft.WithField.
const (
	FieldCategory = "category"
	FieldPrice    = "price"
	FieldQuantity = "quantity"
)

// EditDraft is the working copy of an item under edit. At most one draft is
// active at a time. Price and Quantity travel as plain numeric strings
// (currency symbol stripped, null normalized to "0"); numeric
// well-formedness is not validated until the draft is saved.
type EditDraft struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    string `json:"price"`
	Quantity string `json:"quantity"`
}

// NewDraft creates a draft from an item, normalizing price and quantity to
// plain numeric strings.
func NewDraft(it Item) EditDraft {
	return EditDraft{
		Name:     it.Name,
		Category: it.Category,
		Price:    types.FormatAmount(it.Price),
		Quantity: it.Quantity.String(),
	}
}

// WithField returns a copy of the draft with one field updated. Name is the
// mutation key and cannot be edited. Values are stored as-is; parsing is
// deferred to Commit.
func (d EditDraft) WithField(field, value string) (EditDraft, error) {
	switch field {
	case FieldCategory:
		d.Category = value
	case FieldPrice:
		d.Price = value
	case FieldQuantity:
		d.Quantity = value
	default:
		return d, apperror.NewValidation("unknown draft field").
			WithDetail("field", field)
	}
	return d, nil
}

// Commit materializes the draft into an item. Malformed price or quantity
// strings parse to zero, and value is recomputed as round(price*quantity, 2).
// This is the only place where value is brought back in sync.
func (d EditDraft) Commit() Item {
	price := types.ParseAmountOrZero(d.Price)
	qty := types.ParseQuantityOrZero(d.Quantity)
	value := price.Mul(qty.Decimal()).Round(2)
	return Item{
		Name:     d.Name,
		Category: d.Category,
		Price:    price,
		Quantity: qty,
		Value:    value,
	}
}
