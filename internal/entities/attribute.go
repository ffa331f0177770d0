package entities

// AttributeKind selects which owned, named label table an Attribute lives in.
type AttributeKind int

const (
	KindTag AttributeKind = iota
	KindIngredient
)

// Attribute is a user-owned label attachable to recipes: a Tag or an Ingredient.
type Attribute struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
}

func (k AttributeKind) String() string {
	switch k {
	case KindTag:
		return "tag"
	case KindIngredient:
		return "ingredient"
	default:
		return "unknown"
	}
}

// Table is the table holding attributes of this kind.
func (k AttributeKind) Table() string {
	if k == KindIngredient {
		return "ingredients"
	}
	return "tags"
}

// JoinTable is the recipe association table for this kind.
func (k AttributeKind) JoinTable() string {
	if k == KindIngredient {
		return "recipe_ingredients"
	}
	return "recipe_tags"
}

// JoinColumn is the foreign key column in JoinTable pointing at Table.
func (k AttributeKind) JoinColumn() string {
	if k == KindIngredient {
		return "ingredient_id"
	}
	return "tag_id"
}
