package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"werewolf-service/domain"
)

func TestNightActionRejectsWrongPhaseAndActors(t *testing.T) {
	r := newTestRoom()
	seedPlayers(r, domain.RoleWerewolf, domain.RoleSeer, domain.RoleVillager)
	setPhase(r, domain.PhaseDaySpeech, 2)

	assert.ErrorIs(t, r.NightAction("p1", ActionWerewolfKill, "p3", ""), domain.ErrInvalidPhase)

	setPhase(r, domain.PhaseNight, 2)
	assert.ErrorIs(t, r.NightAction("p3", ActionWerewolfKill, "p1", ""), domain.ErrNotAllowed)
	assert.ErrorIs(t, r.NightAction("p1", ActionSeerInspect, "p3", ""), domain.ErrNotAllowed)
	assert.ErrorIs(t, r.NightAction("p1", ActionWerewolfKill, "ghost", ""), domain.ErrInvalidTarget)
	assert.ErrorIs(t, r.NightAction("p1", "unknown_action", "p3", ""), domain.ErrInvalidInput)
}

func TestWolfKillLastWordWins(t *testing.T) {
	r := newTestRoom()
	seedPlayers(r, domain.RoleWerewolf, domain.RoleWerewolf, domain.RoleVillager, domain.RoleVillager, domain.RoleSeer)
	setPhase(r, domain.PhaseNight, 2)

	require.NoError(t, r.NightAction("p1", ActionWerewolfKill, "p3", ""))
	require.NoError(t, r.NightAction("p2", ActionWerewolfKill, "p4", ""))

	expire(t, r)

	s := r.state
	assert.True(t, s.FindPlayer("p3").IsAlive)
	assert.False(t, s.FindPlayer("p4").IsAlive)
}

func TestPeacefulNight(t *testing.T) {
	r := newTestRoom()
	seedPlayers(r, domain.RoleWerewolf, domain.RoleVillager, domain.RoleVillager)
	setPhase(r, domain.PhaseNight, 2)

	expire(t, r)

	for _, p := range r.state.Players {
		assert.True(t, p.IsAlive)
	}
	last := r.state.Messages[len(r.state.Messages)-2]
	assert.Equal(t, "A peaceful night. No one died.", last.Content)
}

func TestSeerInspectSendsPrivateResult(t *testing.T) {
	notifier := &captureNotifier{}
	r := NewRoom("room1", "en", notifier, nopChatter{})
	seedPlayers(r, domain.RoleWerewolf, domain.RoleSeer, domain.RoleVillager)
	setPhase(r, domain.PhaseNight, 2)

	require.NoError(t, r.NightAction("p2", ActionSeerInspect, "p1", ""))

	require.Len(t, notifier.private, 1)
	msg := notifier.private[0]
	assert.Equal(t, "p2", msg.PlayerID)
	assert.Equal(t, "seer_result", msg.MsgType)
	result, ok := msg.Content.(SeerResult)
	require.True(t, ok)
	assert.Equal(t, "p1", result.TargetID)
	assert.Equal(t, domain.FactionWerewolves, result.Team)

	// One inspection per night.
	assert.ErrorIs(t, r.NightAction("p2", ActionSeerInspect, "p3", ""), domain.ErrNotAllowed)
}

func TestWitchHealSavesWolfTarget(t *testing.T) {
	r := newTestRoom()
	seedPlayers(r, domain.RoleWerewolf, domain.RoleWitch, domain.RoleVillager, domain.RoleVillager)
	setPhase(r, domain.PhaseNight, 2)

	// The antidote only works on tonight's wolf target.
	assert.ErrorIs(t, r.NightAction("p2", ActionWitchHeal, "p3", ""), domain.ErrInvalidTarget)

	require.NoError(t, r.NightAction("p1", ActionWerewolfKill, "p3", ""))
	require.NoError(t, r.NightAction("p2", ActionWitchHeal, "p3", ""))

	expire(t, r)
	s := r.state
	assert.True(t, s.FindPlayer("p3").IsAlive)
	assert.True(t, s.NightActions.WitchHealUsed)

	// The potion is gone for the rest of the match.
	require.Equal(t, domain.PhaseDaySpeech, s.Phase)
	setPhase(r, domain.PhaseNight, 3)
	require.NoError(t, r.NightAction("p1", ActionWerewolfKill, "p4", ""))
	assert.ErrorIs(t, r.NightAction("p2", ActionWitchHeal, "p4", ""), domain.ErrNotAllowed)
}

func TestWitchPoison(t *testing.T) {
	r := newTestRoom()
	seedPlayers(r, domain.RoleWerewolf, domain.RoleWitch, domain.RoleVillager, domain.RoleVillager, domain.RoleSeer)
	setPhase(r, domain.PhaseNight, 2)

	require.NoError(t, r.NightAction("p2", ActionWitchPoison, "p1", ""))

	expire(t, r)
	s := r.state
	victim := s.FindPlayer("p1")
	assert.False(t, victim.IsAlive)
	assert.True(t, victim.IsPoisoned)
	assert.True(t, s.NightActions.WitchPoisonUsed)
}

func TestGuardianBlocksWolfKill(t *testing.T) {
	r := newTestRoom()
	seedPlayers(r, domain.RoleWerewolf, domain.RoleGuardian, domain.RoleVillager, domain.RoleVillager)
	setPhase(r, domain.PhaseNight, 2)

	require.NoError(t, r.NightAction("p1", ActionWerewolfKill, "p3", ""))
	require.NoError(t, r.NightAction("p2", ActionGuardianProtect, "p3", ""))

	expire(t, r)
	assert.True(t, r.state.FindPlayer("p3").IsAlive)
}

func TestGuardianNoRepeatProtection(t *testing.T) {
	r := newTestRoom()
	seedPlayers(r, domain.RoleWerewolf, domain.RoleGuardian, domain.RoleVillager, domain.RoleVillager, domain.RoleSeer)
	s := r.state
	setPhase(r, domain.PhaseNight, 2)

	require.NoError(t, r.NightAction("p1", ActionWerewolfKill, "p3", ""))
	require.NoError(t, r.NightAction("p2", ActionGuardianProtect, "p3", ""))
	expire(t, r)
	require.True(t, s.FindPlayer("p3").IsAlive)

	// Walk the full day back to night so the per-night flags reset through
	// the real transition.
	require.Equal(t, domain.PhaseDaySpeech, s.Phase)
	for range s.AlivePlayers() {
		expire(t, r)
	}
	require.Equal(t, domain.PhaseDayVote, s.Phase)
	expire(t, r)
	require.Equal(t, domain.PhaseDayVoteResult, s.Phase)
	expire(t, r)
	require.Equal(t, domain.PhaseNight, s.Phase)
	require.Equal(t, 3, s.Round)

	// Same guard two nights running is a dropped action.
	require.NoError(t, r.NightAction("p1", ActionWerewolfKill, "p3", ""))
	require.NoError(t, r.NightAction("p2", ActionGuardianProtect, "p3", ""))
	expire(t, r)
	assert.False(t, s.FindPlayer("p3").IsAlive)
}

func TestCupidLoversDieTogether(t *testing.T) {
	r := newTestRoom()
	seedPlayers(r, domain.RoleWerewolf, domain.RoleCupid, domain.RoleVillager, domain.RoleVillager, domain.RoleSeer, domain.RoleHunter)
	setPhase(r, domain.PhaseNight, 1)

	// Cupid links on the first night only.
	require.NoError(t, r.NightAction("p2", ActionCupidLink, "p3", "p4"))
	require.NoError(t, r.NightAction("p1", ActionWerewolfKill, "p3", ""))

	expire(t, r)
	s := r.state
	assert.False(t, s.FindPlayer("p3").IsAlive)
	assert.False(t, s.FindPlayer("p4").IsAlive)
	// The cascade stops at the pair.
	assert.True(t, s.FindPlayer("p5").IsAlive)
}

func TestCupidRestrictedToFirstNight(t *testing.T) {
	r := newTestRoom()
	seedPlayers(r, domain.RoleWerewolf, domain.RoleCupid, domain.RoleVillager, domain.RoleVillager)
	setPhase(r, domain.PhaseNight, 2)

	assert.ErrorIs(t, r.NightAction("p2", ActionCupidLink, "p3", "p4"), domain.ErrNotAllowed)

	setPhase(r, domain.PhaseNight, 1)
	assert.ErrorIs(t, r.NightAction("p2", ActionCupidLink, "p3", "p3"), domain.ErrInvalidTarget)
}

func TestWolfBeautyLinkCascade(t *testing.T) {
	r := newTestRoom()
	seedPlayers(r, domain.RoleWolfBeauty, domain.RoleWerewolf, domain.RoleVillager, domain.RoleVillager, domain.RoleSeer, domain.RoleHunter, domain.RoleGuardian)
	s := r.state
	setPhase(r, domain.PhaseNight, 2)

	require.NoError(t, r.NightAction("p1", ActionBeautyLink, "p3", ""))
	expire(t, r)
	require.True(t, s.FindPlayer("p3").IsLinked)

	// Eliminating the Wolf Beauty by day vote takes the linked player along.
	require.Equal(t, domain.PhaseDaySpeech, s.Phase)
	for range s.AlivePlayers() {
		expire(t, r)
	}
	require.Equal(t, domain.PhaseDayVote, s.Phase)
	require.NoError(t, r.CastVote("p4", "p1"))
	require.NoError(t, r.CastVote("p5", "p1"))
	expire(t, r)

	assert.False(t, s.FindPlayer("p1").IsAlive)
	assert.False(t, s.FindPlayer("p3").IsAlive)
}

func TestNightDeathOfHunterOpensShootWindow(t *testing.T) {
	r := newTestRoom()
	seedPlayers(r, domain.RoleWerewolf, domain.RoleWerewolf, domain.RoleHunter, domain.RoleVillager, domain.RoleVillager, domain.RoleSeer)
	s := r.state
	setPhase(r, domain.PhaseNight, 2)

	require.NoError(t, r.NightAction("p1", ActionWerewolfKill, "p3", ""))
	expire(t, r)

	require.Equal(t, domain.PhaseShootAction, s.Phase)
	require.NotNil(t, s.PendingShootActorID)
	assert.Equal(t, "p3", *s.PendingShootActorID)
	assert.Equal(t, domain.PhaseDaySpeech, s.ShootReturnPhase)

	require.NoError(t, r.Shoot("p3", "p1"))
	assert.False(t, s.FindPlayer("p1").IsAlive)
	assert.Equal(t, domain.PhaseDaySpeech, s.Phase)
}

func TestLoversWinAsLastTwo(t *testing.T) {
	r := newTestRoom()
	seedPlayers(r, domain.RoleWerewolf, domain.RoleCupid, domain.RoleVillager)
	s := r.state
	setPhase(r, domain.PhaseNight, 1)

	require.NoError(t, r.NightAction("p2", ActionCupidLink, "p1", "p2"))
	require.NoError(t, r.NightAction("p1", ActionWerewolfKill, "p3", ""))

	expire(t, r)

	require.NotNil(t, s.Winner)
	assert.Equal(t, domain.WinnerLovers, *s.Winner)
	assert.Equal(t, domain.PhaseGameOver, s.Phase)
}
