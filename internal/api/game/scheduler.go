package game

import (
	"go.uber.org/zap"

	"werewolf-service/domain"
)

// phaseDurations is the static per-phase timer table, in seconds. Speech
// durations apply per speaker.
var phaseDurations = map[domain.Phase]int{
	domain.PhaseNight:              20,
	domain.PhaseElectionNomination: 15,
	domain.PhaseElectionSpeech:     60,
	domain.PhaseElectionVote:       20,
	domain.PhaseElectionResult:     10,
	domain.PhaseDaySpeech:          60,
	domain.PhaseDayVote:            20,
	domain.PhaseDayVoteResult:      10,
	domain.PhaseShootAction:        15,
	domain.PhaseSheriffHandover:    15,
}

// transitions maps each timed phase to its timer-expiry handler. Exactly one
// transition fires per expiry tick; only empty sub-flows fall through
// synchronously inside the same handler.
var transitions map[domain.Phase]func(*Room)

func init() {
	transitions = map[domain.Phase]func(*Room){
		domain.PhaseNight:              (*Room).onNightExpired,
		domain.PhaseElectionNomination: (*Room).onNominationExpired,
		domain.PhaseElectionSpeech:     (*Room).onSpeechExpired,
		domain.PhaseElectionVote:       (*Room).onElectionVoteExpired,
		domain.PhaseElectionResult:     (*Room).onElectionResultExpired,
		domain.PhaseDaySpeech:          (*Room).onSpeechExpired,
		domain.PhaseDayVote:            (*Room).onDayVoteExpired,
		domain.PhaseDayVoteResult:      (*Room).onDayVoteResultExpired,
		domain.PhaseShootAction:        (*Room).onShootExpired,
		domain.PhaseSheriffHandover:    (*Room).onHandoverExpired,
	}
}

// advance fires the transition for the current phase. Caller holds r.mu and
// has already established Timer == 0.
func (r *Room) advance() {
	fn, ok := transitions[r.state.Phase]
	if !ok {
		zap.L().Warn("tick in untimed phase", zap.String("room_id", r.ID), zap.String("phase", string(r.state.Phase)))
		return
	}
	fn(r)
}

// setPhase installs a phase and its timer from the duration table.
func (r *Room) setPhase(phase domain.Phase) {
	r.state.Phase = phase
	r.state.Timer = phaseDurations[phase]
}

// --- phase handlers ---------------------------------------------------------

func (r *Room) onNightExpired() {
	s := r.state
	r.resolveNight()
	if r.evaluateWinner() {
		return
	}
	if s.PendingShootActorID != nil {
		if s.Round == 1 {
			s.ShootReturnPhase = domain.PhaseElectionNomination
		} else {
			s.ShootReturnPhase = domain.PhaseDaySpeech
		}
		r.setPhase(domain.PhaseShootAction)
		r.systemMessage(text(s.Language, "shoot_prompt"))
		return
	}
	r.enterDawn()
}

// enterDawn is the NIGHT successor: election on day one, speeches after.
func (r *Room) enterDawn() {
	s := r.state
	if s.Round == 1 {
		r.setPhase(domain.PhaseElectionNomination)
		r.systemMessage(text(s.Language, "election_nominate"))
		return
	}
	r.enterDaySpeech()
}

func (r *Room) onNominationExpired() {
	s := r.state
	if len(s.SheriffCandidateIDs) > 0 {
		s.SpeechQueue = append([]string(nil), s.SheriffCandidateIDs...)
		r.setCurrentSpeaker(s.SpeechQueue[0])
		r.setPhase(domain.PhaseElectionSpeech)
		r.systemMessage(text(s.Language, "election_speech"))
		return
	}
	// Empty candidate list skips the whole election sub-flow.
	r.enterDaySpeech()
}

// onSpeechExpired consumes the speech queue one speaker per expiry, for both
// the election and the day variant.
func (r *Room) onSpeechExpired() {
	s := r.state
	if len(s.SpeechQueue) > 0 {
		s.SpeechQueue = s.SpeechQueue[1:]
	}
	if len(s.SpeechQueue) == 0 {
		s.CurrentSpeakerID = nil
		if s.Phase == domain.PhaseElectionSpeech {
			r.setPhase(domain.PhaseElectionVote)
			r.systemMessage(text(s.Language, "election_vote"))
		} else {
			r.setPhase(domain.PhaseDayVote)
			r.systemMessage(text(s.Language, "day_vote"))
		}
		return
	}
	r.setCurrentSpeaker(s.SpeechQueue[0])
	r.state.Timer = phaseDurations[s.Phase]
}

func (r *Room) onElectionVoteExpired() {
	s := r.state
	victor := tallyVotes(s, func(id string) bool { return contains(s.SheriffCandidateIDs, id) })
	if victor != "" {
		for _, p := range s.Players {
			p.IsSheriff = p.ID == victor
		}
		if w := s.FindPlayer(victor); w != nil {
			r.systemMessage(w.Name + " " + text(s.Language, "sheriff_elected"))
		}
	} else {
		r.systemMessage(text(s.Language, "sheriff_none"))
	}
	r.setPhase(domain.PhaseElectionResult)
}

func (r *Room) onElectionResultExpired() {
	r.enterDaySpeech()
}

func (r *Room) onDayVoteExpired() {
	s := r.state
	victimID := tallyVotes(s, func(string) bool { return true })
	if victimID != "" {
		victim := s.FindPlayer(victimID)
		switch {
		case victim == nil:
		case victim.Role == domain.RoleIdiot && !victim.IsExposed:
			// The idiot flips its card, survives the vote and loses the
			// ballot for the rest of the match. Day-vote path only.
			victim.IsExposed = true
			r.systemMessage(victim.Name + " " + text(s.Language, "idiot_reveal"))
		default:
			r.systemMessage(victim.Name + " " + text(s.Language, "eliminated"))
			if victim.IsSheriff {
				s.PendingSheriffDeathID = &victim.ID
			}
			dead := r.applyDeaths([]string{victimID})
			r.queueShootFromDeaths(dead)
		}
	}
	if r.evaluateWinner() {
		return
	}
	if s.PendingShootActorID != nil {
		s.ShootReturnPhase = domain.PhaseDayVoteResult
		r.setPhase(domain.PhaseShootAction)
		r.systemMessage(text(s.Language, "shoot_prompt"))
		return
	}
	r.setPhase(domain.PhaseDayVoteResult)
}

func (r *Room) onDayVoteResultExpired() {
	s := r.state
	if s.PendingSheriffDeathID != nil {
		r.setPhase(domain.PhaseSheriffHandover)
		r.systemMessage(text(s.Language, "handover_prompt"))
		return
	}
	r.enterNight()
}

// onHandoverExpired is the timeout path: the badge is destroyed.
func (r *Room) onHandoverExpired() {
	s := r.state
	if s.PendingSheriffDeathID != nil {
		if outgoing := s.FindPlayer(*s.PendingSheriffDeathID); outgoing != nil {
			outgoing.IsSheriff = false
		}
		s.PendingSheriffDeathID = nil
	}
	r.systemMessage(text(s.Language, "badge_destroyed"))
	r.enterNight()
}

// onShootExpired forfeits the pending shot and resumes the suspended flow.
func (r *Room) onShootExpired() {
	r.state.PendingShootActorID = nil
	r.resumeAfterShoot()
}

// resumeAfterShoot re-enters the phase the shoot window interrupted.
func (r *Room) resumeAfterShoot() {
	s := r.state
	returnPhase := s.ShootReturnPhase
	s.ShootReturnPhase = ""
	switch returnPhase {
	case domain.PhaseDaySpeech:
		r.enterDaySpeech()
	case domain.PhaseElectionNomination:
		r.setPhase(domain.PhaseElectionNomination)
		r.systemMessage(text(s.Language, "election_nominate"))
	case domain.PhaseDayVoteResult:
		r.setPhase(domain.PhaseDayVoteResult)
	default:
		r.enterDawn()
	}
}

// --- phase entry helpers ----------------------------------------------------

// enterDaySpeech rebuilds the speech queue from all alive non-spectators in
// table order and clears every ballot.
func (r *Room) enterDaySpeech() {
	s := r.state
	alive := s.AlivePlayers()
	s.SpeechQueue = make([]string, 0, len(alive))
	for _, p := range alive {
		s.SpeechQueue = append(s.SpeechQueue, p.ID)
	}
	for _, p := range s.Players {
		p.VotedFor = nil
		p.VotesReceived = 0
	}
	s.CurrentSpeakerID = nil
	if len(s.SpeechQueue) > 0 {
		r.setCurrentSpeaker(s.SpeechQueue[0])
	}
	r.setPhase(domain.PhaseDaySpeech)
	r.systemMessage(text(s.Language, "day_speech"))
}

// enterNight opens the next round with a fresh scratch space; only the
// witch's single-use flags and the no-repeat guard survive.
func (r *Room) enterNight() {
	s := r.state
	s.Round++
	// resolveNight already produced a scratch space carrying the single-use
	// potions and the no-repeat guard; keep exactly those.
	na := s.NightActions
	s.NightActions = domain.NightActions{
		LastGuardedID:   na.LastGuardedID,
		WitchHealUsed:   na.WitchHealUsed,
		WitchPoisonUsed: na.WitchPoisonUsed,
	}
	for _, p := range s.Players {
		p.HasActed = false
		p.IsProtected = false
	}
	s.SpeechQueue = nil
	s.CurrentSpeakerID = nil
	r.setPhase(domain.PhaseNight)
	r.systemMessage(text(s.Language, "night_start"))
}

// setCurrentSpeaker points the floor at the head of the queue and flags bot
// speakers for an async chatter request.
func (r *Room) setCurrentSpeaker(id string) {
	r.state.CurrentSpeakerID = &id
	if p := r.state.FindPlayer(id); p != nil && p.IsBot {
		r.pendingBotSpeaker = id
	}
}

// --- deaths and outcome -----------------------------------------------------

// applyDeaths kills the given players and runs the cascade to a fixed point:
// a dead lover pulls in the partner, a dead Wolf Beauty pulls in everyone she
// linked. Dead, unknown and spectator ids are ignored.
func (r *Room) applyDeaths(ids []string) []*domain.Player {
	s := r.state
	var dead []*domain.Player
	queue := append([]string(nil), ids...)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		p := s.FindPlayer(id)
		if p == nil || !p.IsAlive || p.IsSpectator {
			continue
		}
		p.IsAlive = false
		dead = append(dead, p)

		if p.LoverID != nil {
			if lover := s.FindPlayer(*p.LoverID); lover != nil && lover.IsAlive {
				r.systemMessage(lover.Name + " " + text(s.Language, "link_death"))
				queue = append(queue, lover.ID)
			}
		}
		if p.Role == domain.RoleWolfBeauty {
			for _, linked := range s.Players {
				if linked.IsLinked && linked.IsAlive {
					r.systemMessage(linked.Name + " " + text(s.Language, "link_death"))
					queue = append(queue, linked.ID)
				}
			}
		}
	}
	return dead
}

// queueShootFromDeaths suspends the flow when a shooter role just died.
func (r *Room) queueShootFromDeaths(dead []*domain.Player) {
	s := r.state
	if s.PendingShootActorID != nil {
		return
	}
	for _, p := range dead {
		if p.Role == domain.RoleHunter || p.Role == domain.RoleWhiteWolfKing {
			s.PendingShootActorID = &p.ID
			return
		}
	}
}

// evaluateWinner checks the faction outcome and freezes the room on a win.
// Returns true when the match just ended.
func (r *Room) evaluateWinner() bool {
	s := r.state
	if s.Winner != nil || s.Round < 1 {
		return s.Winner != nil
	}

	alive := s.AlivePlayers()
	wolves, others := 0, 0
	for _, p := range alive {
		if p.Role.IsWolf() {
			wolves++
		} else {
			others++
		}
	}

	var winner domain.Winner
	switch {
	case len(alive) == 2 && mutualLovers(alive[0], alive[1]):
		winner = domain.WinnerLovers
	case wolves == 0:
		winner = domain.WinnerVillagers
	case wolves >= others:
		winner = domain.WinnerWerewolves
	default:
		return false
	}

	s.Winner = &winner
	s.Phase = domain.PhaseGameOver
	s.Timer = 0
	s.CurrentSpeakerID = nil
	s.SpeechQueue = nil
	s.PendingShootActorID = nil
	s.PendingSheriffDeathID = nil
	r.systemMessage(winnerText(s.Language, winner))
	r.cancelTimer()
	zap.L().Info("game over", zap.String("room_id", r.ID), zap.String("winner", string(winner)))
	return true
}

func mutualLovers(a, b *domain.Player) bool {
	return a.LoverID != nil && b.LoverID != nil && *a.LoverID == b.ID && *b.LoverID == a.ID
}
