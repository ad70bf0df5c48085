// Package llmmethod demonstrates that a graph.Method's body is genuinely
// opaque to the solver core: it may call out to any service, including an
// LLM chat-completion API. It is intentionally small — one constraint, one
// method — since the core itself must never depend on it. Grounded on the
// request-building shape of features/model/anthropic/client.go, scaled down
// to a single prompt-in/text-out call.
package llmmethod

import (
	"context"
	"errors"
	"fmt"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/hotdrink-go/hotdrink/solver/graph"
)

// MessagesClient captures the subset of the Anthropic SDK used here, so
// tests can substitute a fake instead of calling the real API.
type MessagesClient interface {
	New(ctx context.Context, body sdk.MessageNewParams, opts ...option.RequestOption) (*sdk.Message, error)
}

// Options configures the summarize method.
type Options struct {
	Client    MessagesClient
	Model     string
	MaxTokens int
}

// ErrEmptyPrompt's message is the custom MethodFailure the method reports
// when it is invoked with an empty prompt variable.
var ErrEmptyPrompt = errors.New("llmmethod: prompt variable is empty")

// Summarize builds a graph.ComponentDef with a single two-variable
// constraint: "prompt" determines "completion" by issuing one Anthropic
// Messages API call per solve. It exists to prove method bodies can reach
// arbitrary host services; production components would not normally make a
// network call per solve.
func Summarize(opts Options) graph.ComponentDef {
	fn := newCompletionFunc(opts)
	constraint := graph.NewConstraint("respond", []graph.Method{
		graph.NewMethod("complete", []int{0}, []int{1}, fn),
	})
	return graph.ComponentDef{
		Name:          "llm",
		VariableNames: []string{"prompt", "completion"},
		InitialValues: []graph.Value{"", ""},
		Constraints:   []graph.Constraint{constraint},
	}
}

func newCompletionFunc(opts Options) graph.Func {
	model := opts.Model
	if model == "" {
		// A small, cheap default; callers should normally set Options.Model
		// explicitly using the current identifiers from Anthropic's model
		// catalogue or the typed constants in anthropic-sdk-go.
		model = "claude-3-5-haiku-latest"
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 512
	}
	return func(args []graph.Value) ([]graph.Value, *graph.MethodFailure) {
		prompt, _ := args[0].(string)
		if prompt == "" {
			return nil, graph.NewCustomFailure(ErrEmptyPrompt.Error())
		}
		if opts.Client == nil {
			return nil, graph.NewCustomFailure("llmmethod: no client configured")
		}
		msg, err := opts.Client.New(context.Background(), sdk.MessageNewParams{
			Model:     sdk.Model(model),
			MaxTokens: int64(maxTokens),
			Messages: []sdk.MessageParam{
				sdk.NewUserMessage(sdk.NewTextBlock(prompt)),
			},
		})
		if err != nil {
			return nil, graph.NewCustomFailure(fmt.Sprintf("llmmethod: completion request: %v", err))
		}
		return []graph.Value{extractText(msg)}, nil
	}
}

func extractText(msg *sdk.Message) string {
	var out string
	for _, block := range msg.Content {
		if text := block.Text; text != "" {
			out += text
		}
	}
	return out
}
