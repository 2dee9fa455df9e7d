package game

import (
	"go.uber.org/zap"

	"werewolf-service/domain"
)

// Night ability identifiers accepted while the phase is NIGHT.
const (
	ActionWerewolfKill    = "werewolf_kill"
	ActionSeerInspect     = "seer_inspect"
	ActionWitchHeal       = "witch_heal"
	ActionWitchPoison     = "witch_poison"
	ActionGuardianProtect = "guardian_protect"
	ActionCupidLink       = "cupid_link"
	ActionBeautyLink      = "beauty_link"
)

// SeerResult is the private reply sent to the seer for an inspection.
type SeerResult struct {
	TargetID string         `json:"target_id"`
	Team     domain.Faction `json:"team"`
}

// NightAction queues one ability into the scratch space. Anything referencing
// a dead, unknown or already-acted player is silently dropped; the resolution
// always produces a result for partial input.
func (r *Room) NightAction(actorID, action, targetID, secondTargetID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.state
	na := &s.NightActions

	if s.Phase != domain.PhaseNight {
		return domain.ErrInvalidPhase
	}
	actor := s.FindPlayer(actorID)
	if actor == nil || !actor.IsAlive || actor.IsSpectator {
		return domain.ErrNotAllowed
	}
	target := s.FindPlayer(targetID)
	if target == nil || !target.IsAlive || target.IsSpectator {
		return domain.ErrInvalidTarget
	}

	switch action {
	case ActionWerewolfKill:
		if !actor.Role.IsWolf() {
			return domain.ErrNotAllowed
		}
		// Wolves settle on a single target; the last word wins.
		na.WerewolfTargetID = &target.ID

	case ActionSeerInspect:
		if actor.Role != domain.RoleSeer || actor.HasActed {
			return domain.ErrNotAllowed
		}
		na.SeerTargetID = &target.ID
		actor.HasActed = true
		r.notifier.SendToPlayer(r.ID, actor.ID, "seer_result", SeerResult{
			TargetID: target.ID,
			Team:     domain.Roles[target.Role].Team,
		})

	case ActionWitchHeal:
		if actor.Role != domain.RoleWitch || na.WitchHealUsed {
			return domain.ErrNotAllowed
		}
		// The antidote only works on tonight's wolf target, and never
		// together with the poison on the same player.
		if na.WerewolfTargetID == nil || *na.WerewolfTargetID != target.ID {
			return domain.ErrInvalidTarget
		}
		if na.WitchTargetID != nil && *na.WitchTargetID == target.ID {
			return domain.ErrInvalidTarget
		}
		na.WitchSaveTargetID = &target.ID
		na.WitchHealUsed = true

	case ActionWitchPoison:
		if actor.Role != domain.RoleWitch || na.WitchPoisonUsed {
			return domain.ErrNotAllowed
		}
		if na.WitchSaveTargetID != nil && *na.WitchSaveTargetID == target.ID {
			return domain.ErrInvalidTarget
		}
		na.WitchTargetID = &target.ID
		na.WitchPoisonUsed = true

	case ActionGuardianProtect:
		if actor.Role != domain.RoleGuardian || actor.HasActed {
			return domain.ErrNotAllowed
		}
		// The no-repeat rule is enforced at resolution; the choice itself
		// is always recorded.
		na.GuardianTargetID = &target.ID
		actor.HasActed = true

	case ActionCupidLink:
		if actor.Role != domain.RoleCupid || actor.HasActed || s.Round != 1 {
			return domain.ErrNotAllowed
		}
		second := s.FindPlayer(secondTargetID)
		if second == nil || !second.IsAlive || second.IsSpectator || second.ID == target.ID {
			return domain.ErrInvalidTarget
		}
		na.CupidTargetIDs = []string{target.ID, second.ID}
		actor.HasActed = true

	case ActionBeautyLink:
		if actor.Role != domain.RoleWolfBeauty || actor.HasActed || target.ID == actor.ID {
			return domain.ErrNotAllowed
		}
		na.BeautyLinkedID = &target.ID
		actor.HasActed = true

	default:
		return domain.ErrInvalidInput
	}

	r.broadcast()
	return nil
}

// resolveNight applies the scratch space in a fixed order so the outcome is
// deterministic regardless of message arrival order:
// guardian, cupid, beauty link, wolf kill, witch, death cascade. Caller holds
// r.mu; invoked exactly once at the NIGHT timeout, before the transition.
func (r *Room) resolveNight() {
	s := r.state
	na := &s.NightActions

	// 1. Guardian. Protecting the same player two nights running is a
	// dropped action: nobody is guarded.
	guardedID := ""
	if na.GuardianTargetID != nil {
		if na.LastGuardedID != nil && *na.LastGuardedID == *na.GuardianTargetID {
			zap.L().Debug("guardian repeat target dropped", zap.String("room_id", r.ID))
			na.GuardianTargetID = nil
		} else {
			guardedID = *na.GuardianTargetID
			if p := s.FindPlayer(guardedID); p != nil {
				p.IsProtected = true
			}
		}
	}

	// 2. Cupid, first night only, single-use.
	if len(na.CupidTargetIDs) == 2 {
		a := s.FindPlayer(na.CupidTargetIDs[0])
		b := s.FindPlayer(na.CupidTargetIDs[1])
		if a != nil && b != nil && a.ID != b.ID {
			a.LoverID = &b.ID
			b.LoverID = &a.ID
		}
	}

	// 3. Wolf Beauty link.
	if na.BeautyLinkedID != nil {
		if p := s.FindPlayer(*na.BeautyLinkedID); p != nil && p.IsAlive {
			p.IsLinked = true
		}
	}

	// 4+5. Wolf kill against heal and guard, witch poison independently.
	var doomed []string
	if na.WerewolfTargetID != nil {
		victimID := *na.WerewolfTargetID
		healed := na.WitchSaveTargetID != nil && *na.WitchSaveTargetID == victimID
		if !healed && victimID != guardedID {
			doomed = append(doomed, victimID)
		}
	}
	if na.WitchTargetID != nil {
		if p := s.FindPlayer(*na.WitchTargetID); p != nil && p.IsAlive {
			p.IsPoisoned = true
			doomed = append(doomed, p.ID)
		}
	}

	// 6. Death resolution with cascades.
	dead := r.applyDeaths(doomed)
	if len(dead) == 0 {
		r.systemMessage(text(s.Language, "peaceful_night"))
	} else {
		for _, p := range dead {
			r.systemMessage(p.Name + " " + text(s.Language, "died_last_night"))
		}
	}
	r.queueShootFromDeaths(dead)

	// Fresh scratch space for the next night; the single-use potions and
	// the no-repeat guard carry over.
	s.NightActions = domain.NightActions{
		LastGuardedID:   na.GuardianTargetID,
		WitchHealUsed:   na.WitchHealUsed,
		WitchPoisonUsed: na.WitchPoisonUsed,
	}
}
