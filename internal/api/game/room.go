package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"werewolf-service/domain"
)

// MaxActivePlayers caps the non-spectator pool of a room.
const MaxActivePlayers = 12

// Broadcaster pushes engine output to the connections of a room. Implemented
// by the websocket hub.
type Broadcaster interface {
	BroadcastState(roomID string, state *domain.GameState)
	SendToPlayer(roomID, playerID string, msgType string, content interface{})
}

// ChatterRequest is the context handed to the external text producer when a
// bot reaches the head of the speech queue.
type ChatterRequest struct {
	Language   string
	BotName    string
	IsWolf     bool
	Round      int
	AliveCount int
}

// Chatter generates bot table talk. Generate may block on network I/O and is
// only ever called outside the room lock; Filler is the degraded fallback.
type Chatter interface {
	Generate(ctx context.Context, req ChatterRequest) (string, error)
	Filler(language string) string
}

// Room is the unit of isolation: one GameState, one lock, zero or one timer
// task. Every inbound event and the 1s tick serialize on mu; nothing inside
// the critical section blocks on I/O.
type Room struct {
	ID string

	mu    sync.Mutex
	state *domain.GameState

	notifier Broadcaster
	chatter  Chatter

	timerOn   bool
	timerStop chan struct{}

	// Set during a transition when the new speaker is a bot; drained by the
	// tick loop after the lock is released.
	pendingBotSpeaker string
}

func NewRoom(roomID, language string, notifier Broadcaster, chatter Chatter) *Room {
	return &Room{
		ID:       roomID,
		state:    domain.NewGameState(roomID, language),
		notifier: notifier,
		chatter:  chatter,
	}
}

// Phase returns the current phase without exposing the state for mutation.
func (r *Room) Phase() domain.Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.Phase
}

// Summary returns the lobby listing entry.
func (r *Room) Summary() RoomSummary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return RoomSummary{
		ID:          r.ID,
		Phase:       r.state.Phase,
		PlayerCount: len(r.state.ActivePlayers()),
		Language:    r.state.Language,
	}
}

// Close cancels the timer task. The registry calls it on teardown.
func (r *Room) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancelTimer()
}

func (r *Room) broadcast() {
	r.notifier.BroadcastState(r.ID, r.state)
}

// PushState re-broadcasts the current snapshot, used to bring a freshly
// attached connection up to date.
func (r *Room) PushState() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.broadcast()
}

// --- timer task -------------------------------------------------------------

// armTimer starts the per-room tick task. Armed exactly once per match; the
// caller holds r.mu.
func (r *Room) armTimer() {
	if r.timerOn {
		return
	}
	r.timerOn = true
	r.timerStop = make(chan struct{})
	go r.runTimer(r.timerStop)
}

// cancelTimer stops the tick task. The caller holds r.mu.
func (r *Room) cancelTimer() {
	if !r.timerOn {
		return
	}
	r.timerOn = false
	close(r.timerStop)
}

func (r *Room) runTimer(stop chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if !r.Tick() {
				return
			}
		case <-stop:
			return
		}
	}
}

// Tick advances the room by one second: either the timer counts down, or a
// single phase transition fires. Returns false once the room left the active
// phases and the task should stop.
func (r *Room) Tick() bool {
	var botID string

	r.mu.Lock()
	s := r.state
	if !s.Phase.Active() {
		r.cancelTimer()
		r.mu.Unlock()
		return false
	}
	if s.Timer > 0 {
		s.Timer--
	} else {
		r.advance()
		botID = r.pendingBotSpeaker
		r.pendingBotSpeaker = ""
	}
	active := s.Phase.Active()
	if !active {
		r.cancelTimer()
	}
	r.broadcast()
	r.mu.Unlock()

	if botID != "" {
		go r.requestBotChatter(botID)
	}
	return active
}

// --- session events ---------------------------------------------------------

// Join admits a connection under a stable player id. A known id is a
// reconnect in any phase; a new id becomes a player in LOBBY (if there is
// room) or a spectator mid-game.
func (r *Room) Join(playerID, name string) (*domain.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.state

	if p := s.FindPlayer(playerID); p != nil {
		p.IsOnline = true
		if name != "" {
			p.Name = name
		}
		zap.L().Info("player reconnected", zap.String("room_id", r.ID), zap.String("player_id", playerID))
		r.broadcast()
		return p, nil
	}

	isSpectator := false
	active := s.ActivePlayers()
	if s.Phase != domain.PhaseLobby {
		isSpectator = true
	} else if len(active) >= MaxActivePlayers {
		return nil, domain.ErrRoomFull
	}

	if name == "" {
		name = fmt.Sprintf("Player %d", len(s.Players)+1)
	}
	// At most one record ever holds the host flag; a host parked as
	// spectator keeps it.
	hasHost := false
	for _, q := range s.Players {
		if q.IsHost {
			hasHost = true
			break
		}
	}
	p := &domain.Player{
		ID:          playerID,
		Name:        name,
		Role:        domain.RoleVillager,
		Avatar:      domain.AvatarURL(playerID),
		IsAlive:     !isSpectator,
		IsOnline:    true,
		IsSpectator: isSpectator,
		IsHost:      !isSpectator && !hasHost,
	}
	s.Players = append(s.Players, p)
	zap.L().Info("player joined",
		zap.String("room_id", r.ID),
		zap.String("player_id", playerID),
		zap.Bool("spectator", isSpectator))
	r.broadcast()
	return p, nil
}

// Disconnect flips the online flag. The record stays so the player can
// resume mid-round.
func (r *Room) Disconnect(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p := r.state.FindPlayer(playerID); p != nil {
		p.IsOnline = false
		r.broadcast()
	}
}

// --- lobby events -----------------------------------------------------------

func (r *Room) AddBot(actorID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.state

	actor := s.FindPlayer(actorID)
	if actor == nil || !actor.IsHost {
		return domain.ErrNotAllowed
	}
	if len(s.ActivePlayers()) >= MaxActivePlayers {
		return domain.ErrRoomFull
	}

	botCount := 0
	for _, p := range s.Players {
		if p.IsBot {
			botCount++
		}
	}
	botID := "bot-" + uuid.NewString()
	s.Players = append(s.Players, &domain.Player{
		ID:       botID,
		Name:     fmt.Sprintf("Bot %d", botCount+1),
		Role:     domain.RoleVillager,
		Avatar:   domain.AvatarURL(botID),
		IsBot:    true,
		IsAlive:  true,
		IsOnline: true,
	})
	r.broadcast()
	return nil
}

// RemoveBot drops the most recently added bot.
func (r *Room) RemoveBot(actorID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.state

	actor := s.FindPlayer(actorID)
	if actor == nil || !actor.IsHost {
		return domain.ErrNotAllowed
	}
	for i := len(s.Players) - 1; i >= 0; i-- {
		if s.Players[i].IsBot {
			s.Players = append(s.Players[:i], s.Players[i+1:]...)
			r.broadcast()
			return nil
		}
	}
	return domain.ErrInvalidTarget
}

func (r *Room) UpdateRoleCounts(actorID string, counts map[domain.Role]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.state

	actor := s.FindPlayer(actorID)
	if actor == nil || !actor.IsHost {
		return domain.ErrNotAllowed
	}
	if s.Phase != domain.PhaseLobby {
		return domain.ErrInvalidPhase
	}
	for role, n := range counts {
		if _, known := domain.Roles[role]; !known || n < 0 {
			return domain.ErrInvalidInput
		}
	}
	s.RoleCounts = counts
	r.broadcast()
	return nil
}

// ToggleParticipation switches the caller between spectator and player while
// the room is still in LOBBY.
func (r *Room) ToggleParticipation(actorID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.state

	p := s.FindPlayer(actorID)
	if p == nil {
		return domain.ErrInvalidTarget
	}
	if s.Phase != domain.PhaseLobby {
		return domain.ErrInvalidPhase
	}
	if p.IsSpectator {
		if len(s.ActivePlayers()) >= MaxActivePlayers {
			return domain.ErrRoomFull
		}
		p.IsSpectator = false
		p.IsAlive = true
	} else {
		p.IsSpectator = true
		p.IsAlive = false
	}
	r.broadcast()
	return nil
}

func (r *Room) KickPlayer(actorID, targetID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.state

	actor := s.FindPlayer(actorID)
	if actor == nil || !actor.IsHost || actorID == targetID {
		return domain.ErrNotAllowed
	}
	for i, p := range s.Players {
		if p.ID == targetID {
			s.Players = append(s.Players[:i], s.Players[i+1:]...)
			r.broadcast()
			return nil
		}
	}
	return domain.ErrInvalidTarget
}

// StartGame deals the configured deck and moves the room into the first
// night. The timer task is armed here, once per match.
func (r *Room) StartGame(actorID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.state

	actor := s.FindPlayer(actorID)
	if actor == nil || !actor.IsHost {
		return domain.ErrNotAllowed
	}
	if s.Phase != domain.PhaseLobby && s.Phase != domain.PhaseGameOver {
		return domain.ErrInvalidPhase
	}

	deck := buildDeck(s.RoleCounts)
	for i, p := range s.ActivePlayers() {
		if i < len(deck) {
			p.Role = deck[i]
		} else {
			p.Role = domain.RoleVillager
		}
		p.IsAlive = true
		p.VotesReceived = 0
		p.VotedFor = nil
		p.IsSheriff = false
		p.IsProtected = false
		p.IsPoisoned = false
		p.IsLinked = false
		p.LoverID = nil
		p.IsExposed = false
		p.HasActed = false
	}

	s.Round = 1
	s.Winner = nil
	s.SheriffCandidateIDs = nil
	s.SpeechQueue = nil
	s.CurrentSpeakerID = nil
	s.PendingShootActorID = nil
	s.PendingSheriffDeathID = nil
	s.NightActions = domain.NightActions{}
	r.setPhase(domain.PhaseNight)
	r.systemMessage(text(s.Language, "game_started"))
	r.systemMessage(text(s.Language, "night_start"))

	r.armTimer()
	zap.L().Info("game started", zap.String("room_id", r.ID), zap.Int("players", len(s.ActivePlayers())))
	r.broadcast()
	return nil
}

// --- gameplay events --------------------------------------------------------

// CastVote records a ballot: a lynch vote during DAY_VOTE, a sheriff vote
// during ELECTION_VOTE. Self-votes and ballots from revoked idiots are
// rejected.
func (r *Room) CastVote(actorID, targetID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.state

	actor := s.FindPlayer(actorID)
	if actor == nil || !actor.IsAlive || actor.IsSpectator || actor.IsExposed {
		return domain.ErrNotAllowed
	}
	if actorID == targetID {
		return domain.ErrInvalidTarget
	}
	target := s.FindPlayer(targetID)
	if target == nil || !target.IsAlive || target.IsSpectator {
		return domain.ErrInvalidTarget
	}

	switch s.Phase {
	case domain.PhaseDayVote:
	case domain.PhaseElectionVote:
		if !contains(s.SheriffCandidateIDs, targetID) {
			return domain.ErrInvalidTarget
		}
	default:
		return domain.ErrInvalidPhase
	}

	actor.VotedFor = &target.ID
	r.broadcast()
	return nil
}

// Nominate enters or leaves the sheriff candidate set during nomination.
// First-nomination order is preserved.
func (r *Room) Nominate(actorID string, run bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.state

	actor := s.FindPlayer(actorID)
	if actor == nil || !actor.IsAlive || actor.IsSpectator {
		return domain.ErrNotAllowed
	}
	if s.Phase != domain.PhaseElectionNomination {
		return domain.ErrInvalidPhase
	}

	if run {
		if !contains(s.SheriffCandidateIDs, actorID) {
			s.SheriffCandidateIDs = append(s.SheriffCandidateIDs, actorID)
		}
	} else {
		for i, id := range s.SheriffCandidateIDs {
			if id == actorID {
				s.SheriffCandidateIDs = append(s.SheriffCandidateIDs[:i], s.SheriffCandidateIDs[i+1:]...)
				break
			}
		}
	}
	r.broadcast()
	return nil
}

// SheriffHandover settles a dead sheriff's badge: a nil target destroys it.
// Only the outgoing sheriff may act, only during SHERIFF_HANDOVER.
func (r *Room) SheriffHandover(actorID string, targetID *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.state

	if s.Phase != domain.PhaseSheriffHandover {
		return domain.ErrInvalidPhase
	}
	if s.PendingSheriffDeathID == nil || *s.PendingSheriffDeathID != actorID {
		return domain.ErrNotAllowed
	}

	if outgoing := s.FindPlayer(actorID); outgoing != nil {
		outgoing.IsSheriff = false
	}
	if targetID != nil {
		if successor := s.FindPlayer(*targetID); successor != nil && successor.IsAlive && !successor.IsSpectator {
			successor.IsSheriff = true
			r.systemMessage(successor.Name + " " + text(s.Language, "new_sheriff"))
		}
	} else {
		r.systemMessage(text(s.Language, "badge_destroyed"))
	}
	s.PendingSheriffDeathID = nil
	r.enterNight()
	r.broadcast()
	return nil
}

// Shoot resolves a pending hunter / white wolf king shot and resumes the
// suspended transition. The resumed phase may install a bot speaker, so the
// drain runs once the lock is released.
func (r *Room) Shoot(actorID, targetID string) error {
	r.mu.Lock()
	defer r.drainBotSpeaker()
	defer r.mu.Unlock()
	s := r.state

	if s.Phase != domain.PhaseShootAction {
		return domain.ErrInvalidPhase
	}
	if s.PendingShootActorID == nil || *s.PendingShootActorID != actorID {
		return domain.ErrNotAllowed
	}
	target := s.FindPlayer(targetID)
	if target == nil || !target.IsAlive || target.IsSpectator || targetID == actorID {
		return domain.ErrInvalidTarget
	}

	s.PendingShootActorID = nil
	r.systemMessage(target.Name + " " + text(s.Language, "shot_down"))
	dead := r.applyDeaths([]string{targetID})
	r.queueShootFromDeaths(dead)

	if r.evaluateWinner() {
		r.broadcast()
		return nil
	}
	if s.PendingShootActorID != nil {
		// A chained hunter death re-enters the shoot window.
		r.setPhase(domain.PhaseShootAction)
	} else {
		r.resumeAfterShoot()
	}
	r.broadcast()
	return nil
}

// SendMessage appends a chat message if the gate allows the sender to post.
// Rejected messages produce no state change and no broadcast.
func (r *Room) SendMessage(actorID, content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.state

	p := s.FindPlayer(actorID)
	if p == nil || content == "" {
		return domain.ErrInvalidInput
	}
	if !CanChat(p) {
		return domain.ErrNotAllowed
	}
	s.Messages = append(s.Messages, NewPlayerMessage(p, content))
	r.broadcast()
	return nil
}

// PostBotUtterance applies a bot's generated table talk as an ordinary chat
// message. Arrives asynchronously; dropped if the match or the bot moved on.
func (r *Room) PostBotUtterance(botID, content string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.state

	bot := s.FindPlayer(botID)
	if bot == nil || !bot.IsBot || !bot.IsAlive || !s.Phase.Active() || content == "" {
		return
	}
	s.Messages = append(s.Messages, NewPlayerMessage(bot, content))
	r.broadcast()
}

// drainBotSpeaker fires the chatter request for a speaker installed by an
// event-driven transition. Must run without the lock held; the tick path has
// its own inline drain.
func (r *Room) drainBotSpeaker() {
	r.mu.Lock()
	botID := r.pendingBotSpeaker
	r.pendingBotSpeaker = ""
	r.mu.Unlock()
	if botID != "" {
		go r.requestBotChatter(botID)
	}
}

// requestBotChatter asks the external text producer for table talk. Runs in
// its own goroutine, never inside the room lock; failures degrade to the
// per-language filler.
func (r *Room) requestBotChatter(botID string) {
	r.mu.Lock()
	s := r.state
	bot := s.FindPlayer(botID)
	if bot == nil || !bot.IsBot || !bot.IsAlive {
		r.mu.Unlock()
		return
	}
	req := ChatterRequest{
		Language:   s.Language,
		BotName:    bot.Name,
		IsWolf:     bot.Role.IsWolf(),
		Round:      s.Round,
		AliveCount: len(s.AlivePlayers()),
	}
	r.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	content, err := r.chatter.Generate(ctx, req)
	if err != nil || content == "" {
		zap.L().Warn("bot chatter generation failed, using filler",
			zap.String("room_id", r.ID), zap.String("bot_id", botID), zap.Error(err))
		content = r.chatter.Filler(req.Language)
	}
	r.PostBotUtterance(botID, content)
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
