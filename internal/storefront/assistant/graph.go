package assistant

import (
	"context"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	logx "github.com/brb-shop/storefront/pkg/logger"
)

// Runner answers one customer query.
type Runner interface {
	Invoke(ctx context.Context, query string) (string, error)
}

// Config holds everything needed to compose the assistant graph.
type Config struct {
	ChatModel    einomodel.ChatModel
	ModelName    string
	Toolset      *Toolset
	ToolMaxCalls int
	BusinessName string
	CurrencyCode string

	// Conversation, when set, carries earlier turns into the prompt and
	// records each answered query.
	Conversation *Conversation
}

type graphRunner struct {
	runnable     compose.Runnable[string, *schema.Message]
	conversation *Conversation
}

func (r *graphRunner) Invoke(ctx context.Context, query string) (string, error) {
	out, err := r.runnable.Invoke(ctx, query, compose.WithCallbacks(NewCallbacks()))
	if err != nil {
		return "", err
	}
	if out == nil {
		return "", nil
	}

	if r.conversation != nil {
		turn := []*schema.Message{
			schema.UserMessage(strings.TrimSpace(query)),
			schema.AssistantMessage(out.Content, nil),
		}
		if err := r.conversation.Append(ctx, turn...); err != nil {
			logx.Warn().Err(err).Msg("failed to save conversation turn")
		}
	}
	return out.Content, nil
}

// Build binds the toolset to the chat model and compiles the graph:
// InputConverter -> ChatModel <-> ToolExecutor -> END.
func Build(ctx context.Context, cfg Config) (Runner, error) {
	if cfg.ChatModel == nil {
		return nil, fmt.Errorf("chat model is nil")
	}
	if cfg.Toolset == nil {
		return nil, fmt.Errorf("toolset is nil")
	}

	systemPrompt, err := RenderSystemPrompt(ctx, cfg.BusinessName, cfg.CurrencyCode)
	if err != nil {
		return nil, err
	}

	businessTools := cfg.Toolset.Tools()
	toolInfos, err := ToolInfos(ctx, businessTools)
	if err != nil {
		logx.Error().Err(err).Msg("Failed to get tool infos")
		return nil, err
	}
	if err := cfg.ChatModel.BindTools(toolInfos); err != nil {
		logx.Error().Err(err).Msg("Failed to bind tools to chat model")
		return nil, fmt.Errorf("failed to bind tools to chat model: %w", err)
	}

	toolsNode, err := compose.NewToolNode(ctx, &compose.ToolsNodeConfig{
		Tools:                businessTools,
		ExecuteSequentially:  true,
		UnknownToolsHandler:  unknownTool,
		ToolArgumentsHandler: sanitizeArguments,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Failed to create tools node")
		return nil, fmt.Errorf("failed to create tools node: %w", err)
	}

	g := compose.NewGraph[string, *schema.Message](
		compose.WithGenLocalState(func(ctx context.Context) *State {
			return &State{}
		}),
	)

	if err := g.AddLambdaNode(NodeInputConverter, newInputConverterNode(systemPrompt, cfg.Conversation)); err != nil {
		return nil, err
	}
	if err := g.AddChatModelNode(NodeChatModel, cfg.ChatModel,
		compose.WithStatePreHandler(newChatModelPreHandler(cfg.ToolMaxCalls)),
		compose.WithStatePostHandler(newChatModelPostHandler(cfg.ModelName)),
	); err != nil {
		return nil, err
	}
	if err := g.AddToolsNode(NodeToolExecutor, toolsNode,
		compose.WithStatePreHandler(newToolExecutorPreHandler(cfg.ToolMaxCalls)),
	); err != nil {
		return nil, err
	}

	edges := [][2]string{
		{compose.START, NodeInputConverter},
		{NodeInputConverter, NodeChatModel},
		{NodeToolExecutor, NodeChatModel},
	}
	for _, edge := range edges {
		if err := g.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s -> %s: %w", edge[0], edge[1], err)
		}
	}

	branch := compose.NewGraphBranch(
		newToolExecutorCondition(),
		map[string]bool{
			NodeToolExecutor: true,
			compose.END:      true,
		},
	)
	if err := g.AddBranch(NodeChatModel, branch); err != nil {
		logx.Error().Err(err).Msg("Error adding tool branch")
		return nil, fmt.Errorf("error adding tool branch: %w", err)
	}

	// bound the run so a model that keeps asking for tools cannot loop forever
	maxSteps := 10 + normalizeMaxToolCalls(cfg.ToolMaxCalls)*2
	if maxSteps < 20 {
		maxSteps = 20
	}
	runnable, err := g.Compile(ctx, compose.WithMaxRunSteps(maxSteps))
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling graph")
		return nil, fmt.Errorf("error compiling graph: %w", err)
	}

	logx.Debug().Msg("Assistant graph compiled successfully")
	return &graphRunner{runnable: runnable, conversation: cfg.Conversation}, nil
}
