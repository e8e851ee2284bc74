package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	logx "github.com/brb-shop/storefront/pkg/logger"
)

const (
	NodeInputConverter = "InputConverter"
	NodeChatModel      = "ChatModel"
	NodeToolExecutor   = "ToolExecutor"

	DefaultMaxToolCalls = 6
)

// State is the per-invocation graph state. It is only touched inside eino
// state handlers, which serialise access.
type State struct {
	History              []*schema.Message
	ToolCallCount        int
	ToolCallLimitReached bool
	ToolCallIDSeq        int
	TotalCostUSD         float64
}

func normalizeMaxToolCalls(n int) int {
	if n <= 0 {
		return DefaultMaxToolCalls
	}
	return n
}

// checkAndMarkToolLimit marks the state once the call budget is spent.
// Returns true only when marked now.
func checkAndMarkToolLimit(state *State, max int) bool {
	max = normalizeMaxToolCalls(max)
	if !state.ToolCallLimitReached && state.ToolCallCount >= max {
		state.ToolCallLimitReached = true
		return true
	}
	return false
}

// newInputConverterNode turns the customer's query into the opening messages,
// with earlier turns from conv in between when present.
func newInputConverterNode(systemPrompt string, conv *Conversation) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, query string) ([]*schema.Message, error) {
		query = strings.TrimSpace(query)
		if query == "" {
			return nil, fmt.Errorf("query is empty")
		}

		msgs := []*schema.Message{schema.SystemMessage(systemPrompt)}
		if conv != nil {
			history, err := conv.Load(ctx)
			if err != nil {
				logx.Warn().Err(err).Msg("conversation history unavailable, starting fresh")
			} else {
				msgs = append(msgs, history...)
			}
		}
		return append(msgs, schema.UserMessage(query)), nil
	})
}

func newChatModelPreHandler(maxToolCalls int) func(context.Context, []*schema.Message, *State) ([]*schema.Message, error) {
	return func(ctx context.Context, in []*schema.Message, state *State) ([]*schema.Message, error) {
		state.History = append(state.History, in...)

		if checkAndMarkToolLimit(state, maxToolCalls) {
			state.History = append(state.History, schema.SystemMessage(fmt.Sprintf(
				"SYSTEM NOTICE: You have reached the maximum tool call limit (%d). "+
					"Answer the customer with the information you already have.",
				normalizeMaxToolCalls(maxToolCalls),
			)))
		}
		return state.History, nil
	}
}

func newChatModelPostHandler(modelName string) func(context.Context, *schema.Message, *State) (*schema.Message, error) {
	return func(ctx context.Context, out *schema.Message, state *State) (*schema.Message, error) {
		if out == nil {
			return nil, fmt.Errorf("chat model returned no message")
		}

		if out.ResponseMeta != nil && out.ResponseMeta.Usage != nil {
			usage := out.ResponseMeta.Usage
			inC, outC, totalC := ComputeCost(usage, ResolvePricing(modelName))
			state.TotalCostUSD += totalC
			logx.Debug().
				Str("node", NodeChatModel).
				Str("model", modelName).
				Int("prompt_tokens", usage.PromptTokens).
				Int("completion_tokens", usage.CompletionTokens).
				Float64("input_cost_usd", inC).
				Float64("output_cost_usd", outC).
				Float64("total_cost_usd", state.TotalCostUSD).
				Msg("LLM usage")
		}

		// some providers omit tool call ids; the tools node needs them
		for i := range out.ToolCalls {
			if strings.TrimSpace(out.ToolCalls[i].ID) == "" {
				state.ToolCallIDSeq++
				out.ToolCalls[i].ID = fmt.Sprintf("call_%d", state.ToolCallIDSeq)
			}
		}

		state.History = append(state.History, out)
		return out, nil
	}
}

// newToolExecutorCondition routes to the tools node while the model asks for
// tools and the budget allows it.
func newToolExecutorCondition() func(context.Context, *schema.Message) (string, error) {
	return func(ctx context.Context, input *schema.Message) (string, error) {
		var limitReached bool
		err := compose.ProcessState(ctx, func(_ context.Context, state *State) error {
			limitReached = state.ToolCallLimitReached
			return nil
		})
		if err != nil {
			return "", fmt.Errorf("read graph state: %w", err)
		}

		if limitReached {
			logx.Debug().Msg("Tool limit reached - routing to end")
			return compose.END, nil
		}
		if len(input.ToolCalls) > 0 {
			logx.Debug().Int("tool_count", len(input.ToolCalls)).Msg("Routing to ToolExecutor")
			return NodeToolExecutor, nil
		}
		return compose.END, nil
	}
}

func newToolExecutorPreHandler(maxToolCalls int) func(context.Context, *schema.Message, *State) (*schema.Message, error) {
	return func(ctx context.Context, in *schema.Message, state *State) (*schema.Message, error) {
		state.ToolCallCount++
		if state.ToolCallCount > normalizeMaxToolCalls(maxToolCalls) {
			state.ToolCallLimitReached = true
			logx.Warn().
				Int("tool_call_count", state.ToolCallCount).
				Int("max_tool_calls", normalizeMaxToolCalls(maxToolCalls)).
				Msg("Tool call limit exceeded - flagging and continuing")
		}
		return in, nil
	}
}
