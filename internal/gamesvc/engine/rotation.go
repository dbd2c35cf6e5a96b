package engine

import (
	"sort"

	"github.com/avvvet/monopoly-services/internal/comm"
	"github.com/avvvet/monopoly-services/internal/gamesvc/models"
)

// activeOf filters out bankrupt participants, preserving join order.
func activeOf(parts []*models.Participant) []*models.Participant {
	var active []*models.Participant
	for _, p := range parts {
		if !p.IsBankrupt {
			active = append(active, p)
		}
	}
	return active
}

// currentOf resolves the participant whose turn it is:
// active[turn_index mod |active|]. The index is recomputed on every read so
// bankruptcies never leave it dangling.
func currentOf(game *models.Game, parts []*models.Participant) (*models.Participant, error) {
	active := activeOf(parts)
	if len(active) == 0 {
		return nil, badStatef("game %d has no active participants", game.ID)
	}
	return active[game.TurnIndex%len(active)], nil
}

// standingsOf ranks participants for the final result: survivors before
// bankrupts, richer before poorer.
func standingsOf(parts []*models.Participant) []comm.Standing {
	ranked := make([]*models.Participant, len(parts))
	copy(ranked, parts)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].IsBankrupt != ranked[j].IsBankrupt {
			return !ranked[i].IsBankrupt
		}
		return ranked[i].Cash > ranked[j].Cash
	})

	standings := make([]comm.Standing, 0, len(ranked))
	for i, p := range ranked {
		standings = append(standings, comm.Standing{
			ParticipantID: p.ID,
			UserID:        p.UserID,
			Token:         p.Token,
			Cash:          p.Cash,
			IsBankrupt:    p.IsBankrupt,
			Rank:          i + 1,
		})
	}
	return standings
}

// settleAftermath is the uniform post-mutation hook run after anything that
// can change cash or bankruptcy status: it detects the single-survivor end
// condition, flips the game to ended when reached, and recomputes the current
// participant otherwise.
func settleAftermath(m Mutation, game *models.Game, parts []*models.Participant) (ended bool, current *models.Participant, events []comm.Event, err error) {
	if game.Status != models.GamePlaying {
		return game.Status == models.GameEnded, nil, nil, nil
	}

	active := activeOf(parts)
	switch {
	case len(active) == 0:
		return false, nil, nil, badStatef("game %d has no active participants", game.ID)
	case len(active) == 1:
		game.Status = models.GameEnded
		if err := m.UpdateGame(game); err != nil {
			return false, nil, nil, err
		}
		standings := standingsOf(parts)
		over := comm.GameOver{
			GameID:    game.ID,
			WinnerID:  standings[0].UserID,
			Standings: standings,
		}
		events = append(events, comm.NewEvent(comm.EventGameEnded, game.ID, 0, over))
		return true, nil, events, nil
	}

	current = active[game.TurnIndex%len(active)]
	return false, current, nil, nil
}
