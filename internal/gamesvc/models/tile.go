package models

import "time"

// Tile types
const (
	TileProperty       = "property"
	TileRailroad       = "railroad"
	TileUtility        = "utility"
	TileTax            = "tax"
	TileChance         = "chance"
	TileCommunityChest = "community_chest"
	TileGo             = "go"
	TileJail           = "jail"
	TileFreeParking    = "free_parking"
	TileGoToJail       = "go_to_jail"
)

// Tile is one of the 40 immutable board positions, seeded before first use.
type Tile struct {
	ID         int64     `json:"id"`       // Primary key
	Position   int       `json:"position"` // 0..39, unique
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	ColorGroup string    `json:"color_group,omitempty"` // Only for 'property' tiles
	Price      int64     `json:"price"`                 // 0 for unbuyable tiles
	RentBase   int64     `json:"rent_base"`             // 0 means derive from price
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Buyable reports whether landing on an unowned copy of this tile offers a purchase.
func (t *Tile) Buyable() bool {
	switch t.Type {
	case TileProperty, TileRailroad, TileUtility:
		return t.Price > 0
	}
	return false
}
