package game

import (
	"math/rand"

	"werewolf-service/domain"
)

// deckOrder fixes the expansion order of the role configuration so that two
// identical configs always expand to the same deck before the shuffle.
var deckOrder = []domain.Role{
	domain.RoleWerewolf,
	domain.RoleVillager,
	domain.RoleSeer,
	domain.RoleWitch,
	domain.RoleHunter,
	domain.RoleGuardian,
	domain.RoleIdiot,
	domain.RoleWhiteWolfKing,
	domain.RoleWolfBeauty,
	domain.RoleCupid,
}

// buildDeck expands the configured counts into a shuffled deck. Players
// beyond the deck size are padded with the default villager card.
func buildDeck(counts map[domain.Role]int) []domain.Role {
	deck := make([]domain.Role, 0)
	for _, role := range deckOrder {
		for i := 0; i < counts[role]; i++ {
			deck = append(deck, role)
		}
	}
	rand.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}
