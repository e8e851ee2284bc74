package assistant

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/brb-shop/storefront/internal/storefront/model"
)

//go:embed template/system_prompt.txt
var systemPromptTemplate string

// RenderSystemPrompt renders the assistant system prompt through the eino
// prompt component so prompt callbacks fire.
func RenderSystemPrompt(ctx context.Context, businessName, currencyCode string) (string, error) {
	categories := make([]string, 0, len(model.Categories))
	for _, c := range model.Categories {
		if c != model.CategoryAll {
			categories = append(categories, c.String())
		}
	}

	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(systemPromptTemplate),
	)
	vars := map[string]any{
		"BusinessName": businessName,
		"CurrencyCode": currencyCode,
		"SearchTool":   ToolSearchProduct,
		"DetailsTool":  ToolGetProductDetails,
		"AddTool":      ToolAddToCart,
		"ViewCartTool": ToolViewCart,
		"Categories":   strings.Join(categories, ", "),
	}
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return "", fmt.Errorf("system prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("system prompt render: empty result")
	}
	return msgs[0].Content, nil
}
