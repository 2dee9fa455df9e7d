package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"werewolf-service/domain"
)

func TestBuildDeckExpandsCounts(t *testing.T) {
	deck := buildDeck(map[domain.Role]int{
		domain.RoleWerewolf: 2,
		domain.RoleSeer:     1,
		domain.RoleWitch:    1,
	})

	require.Len(t, deck, 4)
	counts := map[domain.Role]int{}
	for _, role := range deck {
		counts[role]++
	}
	assert.Equal(t, 2, counts[domain.RoleWerewolf])
	assert.Equal(t, 1, counts[domain.RoleSeer])
	assert.Equal(t, 1, counts[domain.RoleWitch])
}

func TestBuildDeckEmptyConfig(t *testing.T) {
	assert.Empty(t, buildDeck(map[domain.Role]int{}))
}

func TestStartGamePadsWithVillagers(t *testing.T) {
	r := newTestRoom()
	_, _ = r.Join("host", "Host")
	require.NoError(t, r.AddBot("host"))
	require.NoError(t, r.AddBot("host"))
	require.NoError(t, r.UpdateRoleCounts("host", map[domain.Role]int{domain.RoleWerewolf: 1}))

	require.NoError(t, r.StartGame("host"))
	defer r.Close()

	wolves, villagers := 0, 0
	for _, p := range r.state.ActivePlayers() {
		switch p.Role {
		case domain.RoleWerewolf:
			wolves++
		case domain.RoleVillager:
			villagers++
		}
	}
	assert.Equal(t, 1, wolves)
	assert.Equal(t, 2, villagers)
}
