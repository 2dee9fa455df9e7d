package game

import "werewolf-service/domain"

// System announcement texts, keyed by message and language. The engine only
// speaks in the room's configured language; presentation-side localization is
// out of scope.
var systemTexts = map[string]map[string]string{
	"game_started":     {"en": "Game Started!", "zh": "游戏开始！"},
	"night_start":      {"en": "Night falls. Close your eyes.", "zh": "天黑请闭眼。"},
	"election_nominate": {"en": "Do you want to run for Sheriff?", "zh": "是否上警竞选警长？"},
	"election_speech":  {"en": "Candidates are making speeches.", "zh": "警上玩家依次发言。"},
	"election_vote":    {"en": "Vote for Sheriff!", "zh": "请给警长投票！"},
	"sheriff_elected":  {"en": "is elected Sheriff!", "zh": "当选为警长！"},
	"sheriff_none":     {"en": "No Sheriff elected.", "zh": "本局无警长。"},
	"new_sheriff":      {"en": "is the new Sheriff!", "zh": "接任警长！"},
	"badge_destroyed":  {"en": "The Sheriff badge was destroyed.", "zh": "警徽已被撕毁。"},
	"day_speech":       {"en": "Discussion Phase.", "zh": "自由讨论环节（按顺序发言）。"},
	"day_vote":         {"en": "Please Vote!", "zh": "请投票放逐玩家。"},
	"eliminated":       {"en": "was eliminated!", "zh": "被放逐了！"},
	"idiot_reveal":     {"en": "flips the Idiot card and survives the vote!", "zh": "翻开白痴牌，免疫放逐！"},
	"handover_prompt":  {"en": "Choose a successor for Sheriff.", "zh": "请移交警徽。"},
	"shoot_prompt":     {"en": "Choose a target to shoot!", "zh": "请选择开枪带走的目标！"},
	"shot_down":        {"en": "was shot!", "zh": "被开枪带走了！"},
	"link_death":       {"en": "died due to love link.", "zh": "因为殉情随之而去。"},
	"died_last_night":  {"en": "died last night.", "zh": "昨晚死亡。"},
	"peaceful_night":   {"en": "A peaceful night. No one died.", "zh": "昨晚是平安夜。"},
	"villagers_win":    {"en": "Villagers Win!", "zh": "好人阵营胜利！"},
	"wolves_win":       {"en": "Werewolves Win!", "zh": "狼人阵营胜利！"},
	"lovers_win":       {"en": "Lovers Win!", "zh": "人狼恋胜利！"},
}

func text(language, key string) string {
	if byLang, ok := systemTexts[key]; ok {
		if t, ok := byLang[language]; ok {
			return t
		}
		return byLang["en"]
	}
	return key
}

func winnerText(language string, w domain.Winner) string {
	switch w {
	case domain.WinnerVillagers:
		return text(language, "villagers_win")
	case domain.WinnerWerewolves:
		return text(language, "wolves_win")
	case domain.WinnerLovers:
		return text(language, "lovers_win")
	}
	return text(language, "villagers_win")
}
