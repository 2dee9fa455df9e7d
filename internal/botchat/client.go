package botchat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"werewolf-service/internal/api/game"
)

const defaultTimeout = 10 * time.Second

var fillers = map[string]string{
	"en": "I am thinking...",
	"zh": "我在思考...",
}

// Client generates short table-talk lines for bot players through the Gemini
// REST API. Calls are rate limited so a table full of bots cannot exhaust the
// upstream quota.
type Client struct {
	http    *fasthttp.Client
	limiter *rate.Limiter
	baseURL string
	apiKey  string
	model   string
}

func NewClient(baseURL, apiKey, model string, requestsPerMinute int) *Client {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 30
	}
	return &Client{
		http: &fasthttp.Client{
			ReadTimeout:  defaultTimeout,
			WriteTimeout: defaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), 1),
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate returns one short utterance for the speaking bot. Without an API
// key the bot stays quietly noncommittal.
func (c *Client) Generate(ctx context.Context, req game.ChatterRequest) (string, error) {
	if c.apiKey == "" {
		return "...", nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	body, err := json.Marshal(&generateRequest{
		Contents: []content{{Parts: []part{{Text: buildPrompt(req)}}}},
	})
	if err != nil {
		return "", err
	}

	httpReq := fasthttp.AcquireRequest()
	httpResp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(httpReq)
	defer fasthttp.ReleaseResponse(httpResp)

	httpReq.SetRequestURI(fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey))
	httpReq.Header.SetMethod(fasthttp.MethodPost)
	httpReq.Header.SetContentType("application/json")
	httpReq.SetBody(body)

	deadline := time.Now().Add(defaultTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.http.DoDeadline(httpReq, httpResp, deadline); err != nil {
		return "", err
	}
	if httpResp.StatusCode() != fasthttp.StatusOK {
		return "", fmt.Errorf("chatter upstream returned status %d", httpResp.StatusCode())
	}

	var resp generateResponse
	if err := json.Unmarshal(httpResp.Body(), &resp); err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("chatter upstream returned empty response")
	}

	line := strings.TrimSpace(strings.ReplaceAll(resp.Candidates[0].Content.Parts[0].Text, `"`, ""))
	zap.L().Debug("generated bot chatter", zap.String("bot", req.BotName), zap.String("line", line))
	return line, nil
}

// Filler is the canned line used when generation fails or times out.
func (c *Client) Filler(language string) string {
	if f, ok := fillers[language]; ok {
		return f
	}
	return fillers["en"]
}

func buildPrompt(req game.ChatterRequest) string {
	language := "English"
	if req.Language == "zh" {
		language = "Chinese (Simplified)"
	}
	role := "Good Role"
	if req.IsWolf {
		role = "Werewolf (pretending to be Villager)"
	}

	var b strings.Builder
	b.WriteString("You are playing Werewolf (Social Deduction).\n")
	fmt.Fprintf(&b, "Language: %s.\n", language)
	fmt.Fprintf(&b, "Your Name: %s.\n", req.BotName)
	fmt.Fprintf(&b, "Your Role: %s.\n\n", role)
	b.WriteString("Context:\n")
	fmt.Fprintf(&b, "- Round: %d\n", req.Round)
	b.WriteString("- Phase: Discussion\n")
	fmt.Fprintf(&b, "- Alive: %d\n\n", req.AliveCount)
	b.WriteString("Output:\n")
	b.WriteString("A single short sentence (max 15 words) for the game log.\n")
	b.WriteString("If Chinese, be casual.\n")
	b.WriteString("Do not reveal you are a wolf.\n")
	return b.String()
}
