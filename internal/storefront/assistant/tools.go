package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	errx "github.com/brb-shop/storefront/internal/core/error"
	"github.com/brb-shop/storefront/internal/storefront/cart"
	"github.com/brb-shop/storefront/internal/storefront/catalog"
	"github.com/brb-shop/storefront/internal/storefront/model"
	"github.com/brb-shop/storefront/internal/storefront/money"
)

const (
	ToolSearchProduct     = "search_product"
	ToolGetProductDetails = "get_product_details"
	ToolAddToCart         = "add_to_cart"
	ToolViewCart          = "view_cart"

	defaultMaxResults = 10
	maxMaxResults     = 20
)

// Toolset exposes the catalog and a cart store as eino tools.
type Toolset struct {
	catalog *catalog.Catalog
	cart    *cart.Store
	money   *money.Formatter
}

func NewToolset(c *catalog.Catalog, s *cart.Store, f *money.Formatter) *Toolset {
	return &Toolset{catalog: c, cart: s, money: f}
}

// Tools returns every tool in registration order.
func (t *Toolset) Tools() []tool.BaseTool {
	return []tool.BaseTool{
		t.searchProductTool(),
		t.productDetailsTool(),
		t.addToCartTool(),
		t.viewCartTool(),
	}
}

// ToolInfos collects the schema of each tool for binding to a chat model.
func ToolInfos(ctx context.Context, tools []tool.BaseTool) ([]*schema.ToolInfo, error) {
	infos := make([]*schema.ToolInfo, 0, len(tools))
	for _, tl := range tools {
		info, err := tl.Info(ctx)
		if err != nil {
			return nil, fmt.Errorf("tool info: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// ProductResult is a product as shown to the model.
type ProductResult struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Category       string  `json:"category"`
	Price          int64   `json:"price"`
	PriceFormatted string  `json:"price_formatted"`
	Rating         float64 `json:"rating"`
	Reviews        int     `json:"reviews"`
	Stock          int     `json:"stock"`
	InStock        bool    `json:"in_stock"`
	Badge          string  `json:"badge,omitempty"`
}

func (t *Toolset) productResult(p model.Product) ProductResult {
	return ProductResult{
		ID:             p.ID,
		Name:           p.Name,
		Category:       p.Category.String(),
		Price:          p.Price,
		PriceFormatted: t.money.Format(p.Price),
		Rating:         p.Rating,
		Reviews:        p.Reviews,
		Stock:          p.Stock,
		InStock:        p.InStock(),
		Badge:          p.Badge,
	}
}

// ===================================
// Search Product Tool
// ===================================

type SearchProductInput struct {
	Query      string `json:"query"`
	Category   string `json:"category,omitempty"`
	Sort       string `json:"sort,omitempty"`
	MaxResults int    `json:"max_results,omitempty"`
}

type SearchProductOutput struct {
	Products []ProductResult `json:"products"`
	Total    int             `json:"total"`
}

// resolveCategory maps free text onto a known category, falling back to All.
func resolveCategory(s string) model.Category {
	s = strings.TrimSpace(s)
	for _, c := range model.Categories {
		if strings.EqualFold(c.String(), s) {
			return c
		}
	}
	return model.CategoryAll
}

func (t *Toolset) searchProductTool() tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolSearchProduct,
			Desc: "Search the shop catalog by product name. Returns id, name, price in taka, rating and stock. Use this whenever the customer mentions a product or a category.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"query": {
					Type:     schema.String,
					Desc:     "Case-insensitive text matched against product names, e.g. mouse, watch, hoodie. Empty matches every product.",
					Required: true,
				},
				"category": {
					Type: schema.String,
					Desc: "Optional category filter: Apparel, Electronics, Home, Accessories or All",
				},
				"sort": {
					Type: schema.String,
					Desc: "Optional order: popular (default), price-asc, price-desc or rating",
				},
				"max_results": {
					Type: schema.Integer,
					Desc: "Maximum number of products to return (default: 10, max: 20)",
				},
			}),
		},
		func(ctx context.Context, in *SearchProductInput) (*SearchProductOutput, error) {
			limit := in.MaxResults
			if limit <= 0 {
				limit = defaultMaxResults
			}
			limit = clampInt(limit, 1, maxMaxResults)

			products := t.catalog.View(strings.TrimSpace(in.Query), resolveCategory(in.Category), model.SortKey(in.Sort))
			total := len(products)
			if len(products) > limit {
				products = products[:limit]
			}

			out := &SearchProductOutput{Products: make([]ProductResult, 0, len(products)), Total: total}
			for _, p := range products {
				out.Products = append(out.Products, t.productResult(p))
			}
			return out, nil
		},
	)
}

// ===================================
// Product Details Tool
// ===================================

type GetProductDetailsInput struct {
	ProductID string `json:"product_id"`
}

type GetProductDetailsOutput struct {
	Product *ProductResult `json:"product,omitempty"`
	Image   string         `json:"image,omitempty"`
	InCart  int            `json:"in_cart"`
	Error   string         `json:"error,omitempty"`
}

func (t *Toolset) productDetailsTool() tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolGetProductDetails,
			Desc: "Get one product's details and how many units are already in the cart.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"product_id": {
					Type:     schema.String,
					Desc:     "Product ID from search_product results (e.g., p1, p2). Must be exact.",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *GetProductDetailsInput) (*GetProductDetailsOutput, error) {
			p, ok := t.catalog.Lookup(in.ProductID)
			if !ok {
				return &GetProductDetailsOutput{Error: errx.ProductNotFound(in.ProductID).Message}, nil
			}
			res := t.productResult(p)
			out := &GetProductDetailsOutput{Product: &res, Image: p.Image}
			if line, ok := t.cart.Line(p.ID); ok {
				out.InCart = line.Qty
			}
			return out, nil
		},
	)
}

// ===================================
// Cart Tools
// ===================================

type AddToCartInput struct {
	ProductID string `json:"product_id"`
}

type CartLineResult struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Qty               int    `json:"qty"`
	Stock             int    `json:"stock"`
	Price             int64  `json:"price"`
	SubtotalFormatted string `json:"subtotal_formatted"`
}

type CartOutput struct {
	Added          bool             `json:"added"`
	Lines          []CartLineResult `json:"lines"`
	Count          int              `json:"count"`
	Total          int64            `json:"total"`
	TotalFormatted string           `json:"total_formatted"`
	Note           string           `json:"note,omitempty"`
	Error          string           `json:"error,omitempty"`
}

func (t *Toolset) cartOutput() *CartOutput {
	lines := t.cart.Lines()
	out := &CartOutput{
		Lines:          make([]CartLineResult, 0, len(lines)),
		Count:          t.cart.Count(),
		Total:          t.cart.Total(),
		TotalFormatted: t.money.Format(t.cart.Total()),
	}
	for _, l := range lines {
		out.Lines = append(out.Lines, CartLineResult{
			ID:                l.ID,
			Name:              l.Name,
			Qty:               l.Qty,
			Stock:             l.Stock,
			Price:             l.Price,
			SubtotalFormatted: t.money.Format(l.Subtotal()),
		})
	}
	return out
}

func (t *Toolset) addToCartTool() tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolAddToCart,
			Desc: "Add one unit of a product to the customer's cart. Quantity never exceeds stock; out of stock products are refused.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"product_id": {
					Type:     schema.String,
					Desc:     "Product ID from search_product results (e.g., p1, p2). Must be exact.",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *AddToCartInput) (*CartOutput, error) {
			p, ok := t.catalog.Lookup(in.ProductID)
			if !ok {
				out := t.cartOutput()
				out.Error = errx.ProductNotFound(in.ProductID).Message
				return out, nil
			}

			before, _ := t.cart.Line(p.ID)
			if err := t.cart.Add(ctx, p); err != nil {
				if errors.Is(err, errx.ErrOutOfStock) {
					out := t.cartOutput()
					out.Error = fmt.Sprintf("%s is out of stock", p.Name)
					return out, nil
				}
				return nil, err
			}

			after, _ := t.cart.Line(p.ID)
			out := t.cartOutput()
			out.Added = after.Qty > before.Qty
			if !out.Added {
				out.Note = fmt.Sprintf("%s is already at the stock limit of %d", p.Name, after.Stock)
			}
			return out, nil
		},
	)
}

type ViewCartInput struct{}

func (t *Toolset) viewCartTool() tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name:        ToolViewCart,
			Desc:        "Show the cart lines, item count and total payable in taka.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{}),
		},
		func(ctx context.Context, in *ViewCartInput) (*CartOutput, error) {
			return t.cartOutput(), nil
		},
	)
}
