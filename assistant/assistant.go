package assistant

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/BaSui01/commuteflow/dataset"
	"github.com/BaSui01/commuteflow/llm"
	"github.com/BaSui01/commuteflow/recommend"
	"github.com/BaSui01/commuteflow/sim"
	"github.com/BaSui01/commuteflow/types"
)

// recommendationKeywords route a message to the rule engine instead of
// the LLM.
var recommendationKeywords = []string{"recommend", "advice", "suggest"}

const noProfileReply = "I can give personalized commute recommendations once you select a commuter profile. " +
	"Pick one from the dataset and ask me again."

// Config holds the assistant's chat settings.
type Config struct {
	Model         string  `yaml:"model" json:"model"`
	Temperature   float32 `yaml:"temperature" json:"temperature"`
	MaxTokens     int     `yaml:"max_tokens" json:"max_tokens"`
	HistoryBudget int     `yaml:"history_budget" json:"history_budget"`
}

// Assistant routes user messages between the recommendation engine and
// the LLM provider, with session state behind a SessionStore.
type Assistant struct {
	dataset  dataset.Store
	sessions SessionStore
	provider llm.Provider
	simCfg   sim.Config
	cfg      Config
	counter  *TokenCounter
	logger   *zap.Logger
}

// New creates an Assistant.
func New(ds dataset.Store, sessions SessionStore, provider llm.Provider,
	simCfg sim.Config, cfg Config, counter *TokenCounter, logger *zap.Logger) *Assistant {
	if cfg.HistoryBudget <= 0 {
		cfg.HistoryBudget = DefaultHistoryBudget
	}
	if counter == nil {
		counter = &TokenCounter{}
	}
	return &Assistant{
		dataset:  ds,
		sessions: sessions,
		provider: provider,
		simCfg:   simCfg,
		cfg:      cfg,
		counter:  counter,
		logger:   logger.With(zap.String("component", "assistant")),
	}
}

// StartSession creates and persists an empty session.
func (a *Assistant) StartSession(ctx context.Context) (*Session, error) {
	session := NewSession()
	if err := a.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	a.logger.Info("session started", zap.String("session_id", session.ID))
	return session, nil
}

// Session returns the stored session.
func (a *Assistant) Session(ctx context.Context, sessionID string) (*Session, error) {
	return a.sessions.Get(ctx, sessionID)
}

// EndSession deletes the session.
func (a *Assistant) EndSession(ctx context.Context, sessionID string) error {
	return a.sessions.Delete(ctx, sessionID)
}

// SelectProfile binds a commuter to the session and runs a fresh
// simulation over the whole dataset so the conversation has up-to-date
// crowding insights.
func (a *Assistant) SelectProfile(ctx context.Context, sessionID, commuterID string) (*Session, error) {
	session, err := a.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	profile, err := a.dataset.Profile(ctx, commuterID)
	if err != nil {
		return nil, err
	}

	records, err := a.dataset.All(ctx)
	if err != nil {
		return nil, err
	}

	insights := sim.New(a.simCfg, a.logger).Run(records)

	session.CommuterID = commuterID
	session.Profile = &profile
	session.Insights = &insights
	if err := a.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	a.logger.Info("profile selected",
		zap.String("session_id", sessionID),
		zap.String("commuter_id", commuterID),
		zap.Float64("avg_crowding", insights.AveragePTCrowding),
		zap.Int("switches", insights.TotalModeSwitchesFromPT))

	return session, nil
}

// HandleMessage processes one user turn and returns the assistant's
// reply. Recommendation-style questions are answered by the rule engine;
// everything else goes to the provider. The session is persisted only
// after a successful reply, so a failed provider call does not leave a
// dangling user turn.
func (a *Assistant) HandleMessage(ctx context.Context, sessionID, text string) (string, error) {
	session, err := a.sessions.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}

	if wantsRecommendation(text) {
		reply, err := a.recommendReply(session)
		if err != nil {
			return "", err
		}
		session.Append(llm.RoleUser, text)
		session.Append(llm.RoleAssistant, reply)
		return reply, a.sessions.Save(ctx, session)
	}

	reply, err := a.chatReply(ctx, session, text)
	if err != nil {
		return "", err
	}
	session.Append(llm.RoleUser, text)
	session.Append(llm.RoleAssistant, reply)
	return reply, a.sessions.Save(ctx, session)
}

func (a *Assistant) recommendReply(session *Session) (string, error) {
	if session.Profile == nil {
		return noProfileReply, nil
	}

	recs, err := recommend.Generate(*session.Profile, session.Insights)
	if err != nil {
		return "", err
	}
	return strings.Join(recs, "\n\n"), nil
}

func (a *Assistant) chatReply(ctx context.Context, session *Session, text string) (string, error) {
	msgs := []llm.Message{{Role: llm.RoleSystem, Content: a.systemPrompt(session)}}
	msgs = append(msgs, session.Messages...)
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: text})
	msgs = TrimHistory(msgs, a.cfg.HistoryBudget, a.counter)

	resp, err := a.provider.Completion(ctx, &llm.ChatRequest{
		TraceID:     session.ID,
		Model:       a.cfg.Model,
		Messages:    msgs,
		MaxTokens:   a.cfg.MaxTokens,
		Temperature: a.cfg.Temperature,
	})
	if err != nil {
		return "", err
	}

	reply := llm.FirstText(resp)
	if reply == "" {
		return "", types.NewError(types.ErrUpstreamError, "provider returned no content").
			WithProvider(a.provider.Name())
	}
	return reply, nil
}

// systemPrompt folds the selected profile and the latest simulation
// insights into the assistant persona.
func (a *Assistant) systemPrompt(session *Session) string {
	var b strings.Builder
	b.WriteString("You are a friendly and helpful commute assistant. ")
	b.WriteString("You help commuters understand their travel options and make sustainable choices. ")
	b.WriteString("Keep answers short and practical.")

	if session.Profile != nil {
		p := session.Profile
		fmt.Fprintf(&b, "\n\nThe user is commuter %s, who usually travels by %s. ", p.CommuterID, p.UsualMode)
		fmt.Fprintf(&b, "Their survey scores (1-7) are: attitude PT %d, car %d, walk/cycle %d; ",
			p.AttitudePT, p.AttitudeCar, p.AttitudeWalkCycle)
		fmt.Fprintf(&b, "social norms PT %d, car %d, walk/cycle %d; ",
			p.SNPT, p.SNCar, p.SNWalkCycle)
		fmt.Fprintf(&b, "perceived control PT %d, car %d, walk/cycle %d; ",
			p.PBCPT, p.PBCCar, p.PBCWalkCycle)
		fmt.Fprintf(&b, "intention PT %d, car %d, walk/cycle %d.",
			p.IntentionPT, p.IntentionCar, p.IntentionWalkCycle)
	}

	if session.Insights != nil {
		in := session.Insights
		fmt.Fprintf(&b, "\n\nA crowding simulation over the commuter population (capacity %d, %d cycles) ",
			in.SimulatedPTCapacity, in.NumSimSteps)
		fmt.Fprintf(&b, "measured average public transport crowding of %.0f%% and %d commuters switching away from PT.",
			in.AveragePTCrowding*100, in.TotalModeSwitchesFromPT)
	}

	return b.String()
}

func wantsRecommendation(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range recommendationKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
