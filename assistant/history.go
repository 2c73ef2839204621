package assistant

import (
	"github.com/pkoukk/tiktoken-go"
	"go.uber.org/zap"

	"github.com/BaSui01/commuteflow/llm"
)

// DefaultHistoryBudget caps the tokens of history sent to the provider.
const DefaultHistoryBudget = 3000

// messageOverheadTokens approximates the per-message framing cost.
const messageOverheadTokens = 4

// TokenCounter counts tokens with the cl100k_base encoding when it is
// available and falls back to a bytes/4 heuristic otherwise. The zero
// value uses the heuristic.
type TokenCounter struct {
	enc *tiktoken.Tiktoken
}

// NewTokenCounter builds a counter, degrading to the heuristic when the
// encoding cannot be loaded.
func NewTokenCounter(logger *zap.Logger) *TokenCounter {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		logger.Warn("token encoding unavailable, using byte heuristic", zap.Error(err))
		return &TokenCounter{}
	}
	return &TokenCounter{enc: enc}
}

// Count returns the token count of a string.
func (c *TokenCounter) Count(s string) int {
	if c.enc != nil {
		return len(c.enc.Encode(s, nil, nil))
	}
	return (len(s) + 3) / 4
}

// CountMessages returns the token count of a message list including the
// per-message overhead.
func (c *TokenCounter) CountMessages(msgs []llm.Message) int {
	total := 0
	for _, m := range msgs {
		total += c.Count(m.Content) + messageOverheadTokens
	}
	return total
}

// TrimHistory drops the oldest non-system messages until the list fits
// the budget. A leading system message and the final message always
// survive, even when they alone exceed the budget.
func TrimHistory(msgs []llm.Message, budget int, counter *TokenCounter) []llm.Message {
	if len(msgs) == 0 || counter.CountMessages(msgs) <= budget {
		return msgs
	}

	var system []llm.Message
	rest := msgs
	if msgs[0].Role == llm.RoleSystem {
		system = msgs[:1]
		rest = msgs[1:]
	}

	for len(rest) > 1 {
		candidate := append(append([]llm.Message(nil), system...), rest...)
		if counter.CountMessages(candidate) <= budget {
			break
		}
		rest = rest[1:]
	}

	return append(append([]llm.Message(nil), system...), rest...)
}
