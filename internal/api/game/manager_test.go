package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"werewolf-service/domain"
)

func newTestManager() *RoomManager {
	return NewRoomManager(nopBroadcaster{}, nopChatter{}, "en")
}

func TestCreateAndGetRoom(t *testing.T) {
	m := newTestManager()

	room := m.CreateRoom("zh")
	require.NotNil(t, room)
	assert.Len(t, room.ID, 6)
	assert.Equal(t, "zh", room.state.Language)

	assert.Same(t, room, m.GetRoom(room.ID))
	assert.Nil(t, m.GetRoom("nope"))
}

func TestCreateRoomDefaultLanguage(t *testing.T) {
	m := newTestManager()
	room := m.CreateRoom("")
	assert.Equal(t, "en", room.state.Language)
}

func TestListRooms(t *testing.T) {
	m := newTestManager()
	a := m.CreateRoom("")
	_, err := a.Join("p1", "Alice")
	require.NoError(t, err)
	m.CreateRoom("")

	summaries := m.ListRooms()
	require.Len(t, summaries, 2)
	for _, s := range summaries {
		if s.ID == a.ID {
			assert.Equal(t, 1, s.PlayerCount)
			assert.Equal(t, domain.PhaseLobby, s.Phase)
		}
	}
}

func TestDeleteRoom(t *testing.T) {
	m := newTestManager()
	room := m.CreateRoom("")

	m.DeleteRoom(room.ID)
	assert.Nil(t, m.GetRoom(room.ID))

	// Deleting twice is harmless.
	m.DeleteRoom(room.ID)
}

func TestReleaseIfIdle(t *testing.T) {
	m := newTestManager()

	lobby := m.CreateRoom("")
	m.ReleaseIfIdle(lobby.ID)
	assert.Nil(t, m.GetRoom(lobby.ID), "lobby room should be reclaimed")

	running := m.CreateRoom("")
	running.state.Phase = domain.PhaseNight
	m.ReleaseIfIdle(running.ID)
	assert.NotNil(t, m.GetRoom(running.ID), "mid-game room must survive for reconnects")

	over := m.CreateRoom("")
	over.state.Phase = domain.PhaseGameOver
	m.ReleaseIfIdle(over.ID)
	assert.Nil(t, m.GetRoom(over.ID))
}
