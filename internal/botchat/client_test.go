package botchat

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"werewolf-service/internal/api/game"
)

func TestFillerFallsBackToEnglish(t *testing.T) {
	c := NewClient("http://localhost", "", "gemini-2.5-flash", 30)

	assert.Equal(t, "I am thinking...", c.Filler("en"))
	assert.Equal(t, "我在思考...", c.Filler("zh"))
	assert.Equal(t, "I am thinking...", c.Filler("fr"))
}

func TestGenerateWithoutKeyStaysQuiet(t *testing.T) {
	c := NewClient("http://localhost", "", "gemini-2.5-flash", 30)

	line, err := c.Generate(context.Background(), game.ChatterRequest{Language: "en", BotName: "Bot 1"})

	require.NoError(t, err)
	assert.Equal(t, "...", line)
}

func TestBuildPromptWolfDisguise(t *testing.T) {
	wolf := buildPrompt(game.ChatterRequest{
		Language:   "zh",
		BotName:    "Bot 2",
		IsWolf:     true,
		Round:      3,
		AliveCount: 7,
	})

	assert.True(t, strings.Contains(wolf, "Werewolf (pretending to be Villager)"))
	assert.True(t, strings.Contains(wolf, "Chinese (Simplified)"))
	assert.True(t, strings.Contains(wolf, "Round: 3"))
	assert.True(t, strings.Contains(wolf, "Alive: 7"))
	assert.False(t, strings.Contains(wolf, "Good Role"))

	good := buildPrompt(game.ChatterRequest{Language: "en", BotName: "Bot 1"})
	assert.True(t, strings.Contains(good, "Good Role"))
	assert.True(t, strings.Contains(good, "English"))
}
