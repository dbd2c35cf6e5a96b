package engine

import (
	"strings"

	"github.com/avvvet/monopoly-services/internal/gamesvc/models"
)

const (
	BoardSize    = 40
	JailPosition = 9
	PassGoCredit = 200
	JailFee      = 50
	MaxHouses    = 4
)

// upgradeCosts is the per-house (and hotel) build cost by color group.
var upgradeCosts = map[string]int64{
	"brown":      50,
	"light_blue": 50,
	"pink":       100,
	"orange":     100,
	"red":        150,
	"yellow":     150,
	"green":      200,
	"dark_blue":  200,
}

// advance moves a token sum steps forward and reports whether it wrapped
// past Go.
func advance(pos, sum int) (newPos int, passedGo bool) {
	return (pos + sum) % BoardSize, pos+sum >= BoardSize
}

// rentFor is the flat rent owed on another player's tile: the seeded base
// rent, or a tenth of the purchase price when no base is set.
func rentFor(t *models.Tile) int64 {
	if t.RentBase > 0 {
		return t.RentBase
	}
	rent := t.Price / 10
	if rent < 1 {
		rent = 1
	}
	return rent
}

// taxAmount derives the levy from the tile name.
func taxAmount(t *models.Tile) int64 {
	name := strings.ToLower(t.Name)
	switch {
	case strings.Contains(name, "income"):
		return 200
	case strings.Contains(name, "luxury"):
		return 100
	default:
		return 100
	}
}

// upgradeCost looks up the build cost for a property's color group.
func upgradeCost(t *models.Tile) (int64, bool) {
	c, ok := upgradeCosts[t.ColorGroup]
	return c, ok
}

// saleValue recovers half the purchase price plus half of the building
// investment counted in houses.
func saleValue(t *models.Tile, o *models.Ownership) int64 {
	v := t.Price / 2
	if c, ok := upgradeCost(t); ok {
		v += c * int64(o.Houses) / 2
	}
	return v
}
