package domain

// Phase is the current stage of a match.
type Phase string

const (
	PhaseLobby Phase = "LOBBY"

	PhaseNight Phase = "NIGHT"

	// Election sub-flow, day 1 only.
	PhaseElectionNomination Phase = "ELECTION_NOMINATION"
	PhaseElectionSpeech     Phase = "ELECTION_SPEECH"
	PhaseElectionVote       Phase = "ELECTION_VOTE"
	PhaseElectionResult     Phase = "ELECTION_RESULT"

	PhaseDaySpeech     Phase = "DAY_SPEECH"
	PhaseDayVote       Phase = "DAY_VOTE"
	PhaseDayVoteResult Phase = "DAY_VOTE_RESULT"

	PhaseSheriffHandover Phase = "SHERIFF_HANDOVER"
	PhaseShootAction     Phase = "SHOOT_ACTION"
	PhaseGameOver        Phase = "GAME_OVER"
)

// Active reports whether the phase is driven by the tick loop.
func (p Phase) Active() bool {
	return p != PhaseLobby && p != PhaseGameOver
}

// Winner is the faction outcome of a finished match.
type Winner string

const (
	WinnerVillagers  Winner = "VILLAGERS"
	WinnerWerewolves Winner = "WEREWOLVES"
	WinnerLovers     Winner = "LOVERS"
)

// NightActions is the per-night scratch space. It is reallocated at the start
// of every night; the witch's single-use flags and the previous night's
// guarded target are the only fields that survive the reset.
type NightActions struct {
	WerewolfTargetID *string  `json:"werewolf_target_id"`
	SeerTargetID     *string  `json:"seer_target_id"`
	WitchHealUsed    bool     `json:"witch_heal_used"`
	WitchPoisonUsed  bool     `json:"witch_poison_used"`
	WitchTargetID    *string  `json:"witch_target_id"`
	WitchSaveTargetID *string `json:"witch_save_target_id"`
	GuardianTargetID *string  `json:"guardian_target_id"`
	LastGuardedID    *string  `json:"last_guarded_id"`
	CupidTargetIDs   []string `json:"cupid_target_ids"`
	BeautyLinkedID   *string  `json:"beauty_linked_id"`
}

// GameState is the full state of one room. It is the unit of mutation and the
// unit of broadcast: every change pushes the whole snapshot to every client.
type GameState struct {
	RoomID   string         `json:"room_id"`
	Phase    Phase          `json:"phase"`
	Round    int            `json:"round"`
	Players  []*Player      `json:"players"`
	Messages []ChatMessage  `json:"messages"`
	Timer    int            `json:"timer"`
	Winner   *Winner        `json:"winner"`
	Language string         `json:"language"`

	RoleCounts map[Role]int `json:"role_counts"`

	SheriffCandidateIDs []string `json:"sheriff_candidate_ids"`
	SpeechQueue         []string `json:"speech_queue"`
	CurrentSpeakerID    *string  `json:"current_speaker_id"`

	NightActions NightActions `json:"night_actions"`

	PendingShootActorID  *string `json:"pending_shoot_actor_id"`
	PendingSheriffDeathID *string `json:"pending_sheriff_death_id"`

	// Phase the flow resumes with once a pending shoot is settled.
	ShootReturnPhase Phase `json:"-"`
}

// NewGameState returns a fresh LOBBY state for a room.
func NewGameState(roomID, language string) *GameState {
	return &GameState{
		RoomID:     roomID,
		Phase:      PhaseLobby,
		Round:      0,
		Players:    make([]*Player, 0),
		Messages:   make([]ChatMessage, 0),
		Language:   language,
		RoleCounts: DefaultRoleCounts(),
	}
}

// FindPlayer returns the record with the given id, or nil.
func (s *GameState) FindPlayer(id string) *Player {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// ActivePlayers returns all non-spectator records in table order.
func (s *GameState) ActivePlayers() []*Player {
	out := make([]*Player, 0, len(s.Players))
	for _, p := range s.Players {
		if !p.IsSpectator {
			out = append(out, p)
		}
	}
	return out
}

// AlivePlayers returns all alive non-spectator records in table order.
func (s *GameState) AlivePlayers() []*Player {
	out := make([]*Player, 0, len(s.Players))
	for _, p := range s.Players {
		if p.IsAlive && !p.IsSpectator {
			out = append(out, p)
		}
	}
	return out
}
