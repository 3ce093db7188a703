package semantic

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"ClerkAI/app/services/clerk/clerk"
	"ClerkAI/app/services/clerk/internal/agent/lexicon"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"github.com/zeromicro/go-zero/core/logx"
)

const matcherModelNodeKey = "semantic_matcher_model"

type Request struct {
	Query        string
	CategoryHint string
	TypeHints    []string
	VibeHints    []string
	Products     []clerk.Product
	Limit        int
}

// Result is the model's raw pick; ids are not yet checked against the catalog.
type Result struct {
	ProductIds []int64 `json:"productIds"`
	Category   string  `json:"category,omitempty"`
}

type compactProduct struct {
	Id          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Types       []string `json:"types"`
	Vibes       []string `json:"vibes"`
	Price       float64  `json:"price"`
	Rating      float64  `json:"rating"`
}

// Matcher asks the chat model which catalog entries fit a free-text query.
type Matcher struct {
	runnable compose.Runnable[Request, *Result]
	timeout  time.Duration
}

func NewMatcher(ctx context.Context, chatModel model.BaseChatModel, timeout time.Duration) (*Matcher, error) {
	if chatModel == nil {
		return nil, fmt.Errorf("chat model is required")
	}

	chain := compose.NewChain[Request, *Result]()

	chain.AppendLambda(compose.InvokableLambda(func(_ context.Context, in Request) ([]*schema.Message, error) {
		systemPrompt := `You match shoppers to products in a small fashion catalog.
Read the shopper query and the catalog JSON, then answer with strict JSON only:
{"productIds": [ids best match first], "category": "catalog category if the query clearly targets one"}
Rules:
- Only use ids that appear in the catalog.
- Return at most the requested number of ids.
- Return an empty list when nothing fits. Never add prose or code fences.`

		catalog := make([]compactProduct, 0, len(in.Products))
		for _, p := range in.Products {
			catalog = append(catalog, compactProduct{
				Id:          p.Id,
				Name:        p.Name,
				Description: p.Description,
				Category:    p.Category,
				Types:       lexicon.InferProductTypes(p),
				Vibes:       lexicon.InferVibes(p),
				Price:       p.Price,
				Rating:      p.Rating,
			})
		}
		body, err := json.Marshal(catalog)
		if err != nil {
			return nil, err
		}

		var user strings.Builder
		user.WriteString("Shopper query: ")
		user.WriteString(in.Query)
		if in.CategoryHint != "" {
			user.WriteString("\nCategory hint: ")
			user.WriteString(in.CategoryHint)
		}
		if len(in.TypeHints) > 0 {
			user.WriteString("\nProduct types: ")
			user.WriteString(strings.Join(in.TypeHints, ", "))
		}
		if len(in.VibeHints) > 0 {
			user.WriteString("\nVibes: ")
			user.WriteString(strings.Join(in.VibeHints, ", "))
		}
		user.WriteString(fmt.Sprintf("\nReturn at most %d ids.\nCatalog: ", in.Limit))
		user.Write(body)

		return []*schema.Message{
			schema.SystemMessage(systemPrompt),
			schema.UserMessage(user.String()),
		}, nil
	}))

	chain.AppendChatModel(chatModel, compose.WithNodeKey(matcherModelNodeKey))

	chain.AppendLambda(compose.InvokableLambda(func(_ context.Context, msg *schema.Message) (*Result, error) {
		if msg == nil {
			return nil, fmt.Errorf("empty message")
		}
		payload := TrimJSONBlock(msg.Content)
		if payload == "" {
			return nil, fmt.Errorf("semantic match returned no json")
		}
		var res Result
		if err := json.Unmarshal([]byte(payload), &res); err != nil {
			return nil, fmt.Errorf("unmarshal semantic match: %w", err)
		}
		return &res, nil
	}))

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, err
	}

	return &Matcher{runnable: runnable, timeout: timeout}, nil
}

func (m *Matcher) Match(ctx context.Context, in Request) (*Result, error) {
	if m == nil || m.runnable == nil {
		return nil, fmt.Errorf("semantic matcher unavailable")
	}
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	start := time.Now()
	res, err := m.runnable.Invoke(ctx, in)
	logx.WithContext(ctx).Infof("semantic match took %s", time.Since(start))
	return res, err
}

// TrimJSONBlock strips code fences and any text around the outermost JSON
// object.
func TrimJSONBlock(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return ""
	}
	return s[start : end+1]
}
