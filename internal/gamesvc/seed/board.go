package seed

import "github.com/avvvet/monopoly-services/internal/gamesvc/models"

// BoardSize is the number of tiles every board carries.
const BoardSize = 40

// boardTiles is the fixed 40-tile layout, indexed by position. Jail sits at
// position 9 and doubles as "just visiting".
var boardTiles = []models.Tile{
	{Position: 0, Name: "GO", Type: models.TileGo},
	{Position: 1, Name: "Mediterranean Avenue", Type: models.TileProperty, ColorGroup: "brown", Price: 60, RentBase: 2},
	{Position: 2, Name: "Community Chest", Type: models.TileCommunityChest},
	{Position: 3, Name: "Baltic Avenue", Type: models.TileProperty, ColorGroup: "brown", Price: 60, RentBase: 4},
	{Position: 4, Name: "Income Tax", Type: models.TileTax},
	{Position: 5, Name: "Reading Railroad", Type: models.TileRailroad, Price: 200, RentBase: 25},
	{Position: 6, Name: "Oriental Avenue", Type: models.TileProperty, ColorGroup: "light_blue", Price: 100, RentBase: 6},
	{Position: 7, Name: "Chance", Type: models.TileChance},
	{Position: 8, Name: "Vermont Avenue", Type: models.TileProperty, ColorGroup: "light_blue", Price: 100, RentBase: 6},
	{Position: 9, Name: "Jail", Type: models.TileJail},
	{Position: 10, Name: "Connecticut Avenue", Type: models.TileProperty, ColorGroup: "light_blue", Price: 120, RentBase: 8},
	{Position: 11, Name: "St. Charles Place", Type: models.TileProperty, ColorGroup: "pink", Price: 140, RentBase: 10},
	{Position: 12, Name: "Electric Company", Type: models.TileUtility, Price: 150},
	{Position: 13, Name: "States Avenue", Type: models.TileProperty, ColorGroup: "pink", Price: 140, RentBase: 10},
	{Position: 14, Name: "Virginia Avenue", Type: models.TileProperty, ColorGroup: "pink", Price: 160, RentBase: 12},
	{Position: 15, Name: "Pennsylvania Railroad", Type: models.TileRailroad, Price: 200, RentBase: 25},
	{Position: 16, Name: "St. James Place", Type: models.TileProperty, ColorGroup: "orange", Price: 180, RentBase: 14},
	{Position: 17, Name: "Community Chest", Type: models.TileCommunityChest},
	{Position: 18, Name: "Tennessee Avenue", Type: models.TileProperty, ColorGroup: "orange", Price: 180, RentBase: 14},
	{Position: 19, Name: "New York Avenue", Type: models.TileProperty, ColorGroup: "orange", Price: 200, RentBase: 16},
	{Position: 20, Name: "Free Parking", Type: models.TileFreeParking},
	{Position: 21, Name: "Kentucky Avenue", Type: models.TileProperty, ColorGroup: "red", Price: 220, RentBase: 18},
	{Position: 22, Name: "Chance", Type: models.TileChance},
	{Position: 23, Name: "Indiana Avenue", Type: models.TileProperty, ColorGroup: "red", Price: 220, RentBase: 18},
	{Position: 24, Name: "Illinois Avenue", Type: models.TileProperty, ColorGroup: "red", Price: 240, RentBase: 20},
	{Position: 25, Name: "B&O Railroad", Type: models.TileRailroad, Price: 200, RentBase: 25},
	{Position: 26, Name: "Atlantic Avenue", Type: models.TileProperty, ColorGroup: "yellow", Price: 260, RentBase: 22},
	{Position: 27, Name: "Ventnor Avenue", Type: models.TileProperty, ColorGroup: "yellow", Price: 260, RentBase: 22},
	{Position: 28, Name: "Water Works", Type: models.TileUtility, Price: 150},
	{Position: 29, Name: "Marvin Gardens", Type: models.TileProperty, ColorGroup: "yellow", Price: 280, RentBase: 24},
	{Position: 30, Name: "Go To Jail", Type: models.TileGoToJail},
	{Position: 31, Name: "Pacific Avenue", Type: models.TileProperty, ColorGroup: "green", Price: 300, RentBase: 26},
	{Position: 32, Name: "North Carolina Avenue", Type: models.TileProperty, ColorGroup: "green", Price: 300, RentBase: 26},
	{Position: 33, Name: "Community Chest", Type: models.TileCommunityChest},
	{Position: 34, Name: "Pennsylvania Avenue", Type: models.TileProperty, ColorGroup: "green", Price: 320, RentBase: 28},
	{Position: 35, Name: "Short Line", Type: models.TileRailroad, Price: 200, RentBase: 25},
	{Position: 36, Name: "Chance", Type: models.TileChance},
	{Position: 37, Name: "Park Place", Type: models.TileProperty, ColorGroup: "dark_blue", Price: 350, RentBase: 35},
	{Position: 38, Name: "Luxury Tax", Type: models.TileTax},
	{Position: 39, Name: "Boardwalk", Type: models.TileProperty, ColorGroup: "dark_blue", Price: 400, RentBase: 50},
}
