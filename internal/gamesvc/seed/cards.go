package seed

import "github.com/avvvet/monopoly-services/internal/gamesvc/models"

// DeckSize is the number of cards in each deck.
const DeckSize = 16

// Card destinations reference board positions from board.go.
var chanceCards = []models.Card{
	{Message: "Advance to GO, collect $200", ActionType: models.CardMove, MoveTo: 0, CollectGo: true},
	{Message: "Advance to Illinois Avenue", ActionType: models.CardMove, MoveTo: 24, CollectGo: true},
	{Message: "Advance to St. Charles Place", ActionType: models.CardMove, MoveTo: 11, CollectGo: true},
	{Message: "Take a trip to Reading Railroad", ActionType: models.CardMove, MoveTo: 5, CollectGo: true},
	{Message: "Advance to Boardwalk", ActionType: models.CardMove, MoveTo: 39},
	{Message: "Bank pays you dividend of $50", ActionType: models.CardCollect, Amount: 50},
	{Message: "Your building loan matures, collect $150", ActionType: models.CardCollect, Amount: 150},
	{Message: "You won a crossword competition, collect $100", ActionType: models.CardCollect, Amount: 100},
	{Message: "Speeding fine, pay $15", ActionType: models.CardPay, Amount: 15},
	{Message: "Pay poor tax of $50", ActionType: models.CardPay, Amount: 50},
	{Message: "Pay school fees of $150", ActionType: models.CardPay, Amount: 150},
	{Message: "Go directly to jail, do not pass GO", ActionType: models.CardGoToJail},
	{Message: "Get out of jail free", ActionType: models.CardGoojf},
	{Message: "Advance to New York Avenue", ActionType: models.CardMove, MoveTo: 19, CollectGo: true},
	{Message: "Take a walk to Free Parking", ActionType: models.CardMove, MoveTo: 20},
	{Message: "Bank error in your favor, collect $75", ActionType: models.CardCollect, Amount: 75},
}

var communityChestCards = []models.Card{
	{Message: "Advance to GO, collect $200", ActionType: models.CardMove, MoveTo: 0, CollectGo: true},
	{Message: "Bank error in your favor, collect $200", ActionType: models.CardCollect, Amount: 200},
	{Message: "Doctor's fee, pay $50", ActionType: models.CardPay, Amount: 50},
	{Message: "From sale of stock you get $50", ActionType: models.CardCollect, Amount: 50},
	{Message: "Get out of jail free", ActionType: models.CardGoojf},
	{Message: "Go directly to jail, do not pass GO", ActionType: models.CardGoToJail},
	{Message: "Holiday fund matures, collect $100", ActionType: models.CardCollect, Amount: 100},
	{Message: "Income tax refund, collect $20", ActionType: models.CardCollect, Amount: 20},
	{Message: "Life insurance matures, collect $100", ActionType: models.CardCollect, Amount: 100},
	{Message: "Pay hospital fees of $100", ActionType: models.CardPay, Amount: 100},
	{Message: "Pay school fees of $50", ActionType: models.CardPay, Amount: 50},
	{Message: "Receive $25 consultancy fee", ActionType: models.CardCollect, Amount: 25},
	{Message: "You inherit $100", ActionType: models.CardCollect, Amount: 100},
	{Message: "You won second prize in a beauty contest, collect $10", ActionType: models.CardCollect, Amount: 10},
	{Message: "It is your birthday, collect $40", ActionType: models.CardCollect, Amount: 40},
	{Message: "Street repairs, pay $40", ActionType: models.CardPay, Amount: 40},
}
