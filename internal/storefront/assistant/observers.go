package assistant

import (
	"context"

	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/tool"
	callbackHelper "github.com/cloudwego/eino/utils/callbacks"

	logx "github.com/brb-shop/storefront/pkg/logger"
)

func newToolHandler() *callbackHelper.ToolCallbackHandler {
	return &callbackHelper.ToolCallbackHandler{
		OnStart: func(ctx context.Context, info *einocb.RunInfo, input *tool.CallbackInput) context.Context {
			if input != nil {
				logx.Debug().Str("tool", info.Name).Str("arguments", input.ArgumentsInJSON).Msg("tool start")
			}
			return ctx
		},
		OnEnd: func(ctx context.Context, info *einocb.RunInfo, output *tool.CallbackOutput) context.Context {
			if output != nil {
				logx.Debug().Str("tool", info.Name).Str("response", output.Response).Msg("tool end")
			}
			return ctx
		},
		OnError: func(ctx context.Context, info *einocb.RunInfo, err error) context.Context {
			logx.Error().Err(err).Str("tool", info.Name).Msg("tool failed")
			return ctx
		},
	}
}

func newModelHandler() *callbackHelper.ModelCallbackHandler {
	return &callbackHelper.ModelCallbackHandler{
		OnStart: func(ctx context.Context, info *einocb.RunInfo, input *model.CallbackInput) context.Context {
			n := 0
			if input != nil {
				n = len(input.Messages)
			}
			logx.Debug().Str("model", info.Name).Int("messages", n).Msg("model start")
			return ctx
		},
		OnEnd: func(ctx context.Context, info *einocb.RunInfo, output *model.CallbackOutput) context.Context {
			if output != nil && output.Message != nil {
				logx.Debug().
					Str("model", info.Name).
					Int("tool_calls", len(output.Message.ToolCalls)).
					Int("content_len", len(output.Message.Content)).
					Msg("model end")
			}
			return ctx
		},
		OnError: func(ctx context.Context, info *einocb.RunInfo, err error) context.Context {
			logx.Error().Err(err).Str("model", info.Name).Msg("model failed")
			return ctx
		},
	}
}

// NewCallbacks aggregates the model and tool observers into one handler.
func NewCallbacks() einocb.Handler {
	return callbackHelper.NewHandlerHelper().
		Tool(newToolHandler()).
		ChatModel(newModelHandler()).
		Handler()
}
