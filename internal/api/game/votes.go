package game

import "werewolf-service/domain"

// tallyVotes computes the weighted totals for every ballot whose target
// passes validTarget, writes each player's received total back onto the
// record, and returns the strict maximum. A tie at the maximum yields "": no
// elimination, no sheriff — never a re-vote.
//
// A sheriff's ballot weighs 1.5, everyone else's 1.0. Spectators, the dead
// and revoked idiots carry no ballot.
func tallyVotes(s *domain.GameState, validTarget func(id string) bool) string {
	weights := make(map[string]float64)
	for _, p := range s.Players {
		if !p.IsAlive || p.IsSpectator || p.IsExposed || p.VotedFor == nil {
			continue
		}
		if !validTarget(*p.VotedFor) {
			continue
		}
		w := 1.0
		if p.IsSheriff {
			w = 1.5
		}
		weights[*p.VotedFor] += w
	}

	for _, p := range s.Players {
		p.VotesReceived = weights[p.ID]
	}

	// Table order keeps the scan deterministic.
	victim, max := "", 0.0
	tie := false
	for _, p := range s.Players {
		w := weights[p.ID]
		if w <= 0 {
			continue
		}
		switch {
		case w > max:
			max, victim, tie = w, p.ID, false
		case w == max:
			tie = true
		}
	}
	if tie {
		return ""
	}
	return victim
}
