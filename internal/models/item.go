package models

// Item is a product kind tracked by the inventory. Name is the natural key
// used in every public URL.
type Item struct {
	ID       int      `json:"item_id" db:"item_id"`
	Name     string   `json:"name" db:"name"`
	Category *string  `json:"category" db:"category"`
	Weight   *float64 `json:"weight" db:"weight"`
}

// ItemDocument is the writable representation of an Item. Absent fields
// are left untouched by Deserialize.
type ItemDocument struct {
	Name     *string  `json:"name,omitempty" jsonschema:"required,minLength=1,maxLength=64"`
	Category *string  `json:"category,omitempty" jsonschema:"maxLength=64"`
	Weight   *float64 `json:"weight,omitempty" jsonschema:"minimum=0"`
}

func (i *Item) Serialize() ItemDocument {
	return ItemDocument{
		Name:     stringPtr(i.Name),
		Category: cloneString(i.Category),
		Weight:   cloneFloat(i.Weight),
	}
}

func (i *Item) Deserialize(doc ItemDocument) {
	if doc.Name != nil {
		i.Name = *doc.Name
	}
	if doc.Category != nil {
		i.Category = cloneString(doc.Category)
	}
	if doc.Weight != nil {
		i.Weight = cloneFloat(doc.Weight)
	}
}
