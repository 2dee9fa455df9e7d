package domain

// Role identifies a card in the deck.
type Role string

const (
	RoleWerewolf      Role = "WEREWOLF"
	RoleVillager      Role = "VILLAGER"
	RoleSeer          Role = "SEER"
	RoleWitch         Role = "WITCH"
	RoleHunter        Role = "HUNTER"
	RoleGuardian      Role = "GUARDIAN"
	RoleIdiot         Role = "IDIOT"
	RoleWhiteWolfKing Role = "WHITE_WOLF_KING"
	RoleWolfBeauty    Role = "WOLF_BEAUTY"
	RoleCupid         Role = "CUPID"
)

// Faction is the team a role belongs to.
type Faction string

const (
	FactionVillagers  Faction = "VILLAGERS"
	FactionWerewolves Faction = "WEREWOLVES"
	FactionNeutral    Faction = "NEUTRAL"
)

// RoleInfo carries the static metadata revealed for a role.
type RoleInfo struct {
	Type Role    `json:"type"`
	Team Faction `json:"team"`
	Icon string  `json:"icon"`
}

// Roles is the static role registry.
var Roles = map[Role]RoleInfo{
	RoleVillager:      {Type: RoleVillager, Team: FactionVillagers, Icon: "🧑‍🌾"},
	RoleWerewolf:      {Type: RoleWerewolf, Team: FactionWerewolves, Icon: "🐺"},
	RoleSeer:          {Type: RoleSeer, Team: FactionVillagers, Icon: "🔮"},
	RoleWitch:         {Type: RoleWitch, Team: FactionVillagers, Icon: "🧪"},
	RoleHunter:        {Type: RoleHunter, Team: FactionVillagers, Icon: "🔫"},
	RoleGuardian:      {Type: RoleGuardian, Team: FactionVillagers, Icon: "🛡️"},
	RoleIdiot:         {Type: RoleIdiot, Team: FactionVillagers, Icon: "🃏"},
	RoleWhiteWolfKing: {Type: RoleWhiteWolfKing, Team: FactionWerewolves, Icon: "👑"},
	RoleWolfBeauty:    {Type: RoleWolfBeauty, Team: FactionWerewolves, Icon: "💄"},
	RoleCupid:         {Type: RoleCupid, Team: FactionNeutral, Icon: "💘"},
}

// IsWolf reports whether the role plays for the werewolf faction.
func (r Role) IsWolf() bool {
	return Roles[r].Team == FactionWerewolves
}

// DefaultRoleCounts is the lobby default deck configuration.
func DefaultRoleCounts() map[Role]int {
	return map[Role]int{
		RoleWerewolf:      3,
		RoleVillager:      3,
		RoleSeer:          1,
		RoleWitch:         1,
		RoleHunter:        1,
		RoleGuardian:      0,
		RoleIdiot:         0,
		RoleWhiteWolfKing: 0,
		RoleWolfBeauty:    0,
		RoleCupid:         0,
	}
}
