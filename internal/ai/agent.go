package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
)

const systemPrompt = `You are a sales assistant for an Odoo ERP system.
Use the available tools to look up products and orders and to create
orders on the customer's behalf. Report tool failures back to the user
verbatim; never invent ids or amounts.`

// maxToolRounds caps the agentic loop so a confused model cannot spin
// tool calls forever.
const maxToolRounds = 8

// Agent drives the registered tools from natural language through the
// OpenAI Responses API.
type Agent struct {
	client   *openai.Client
	registry *ToolRegistry
}

func NewAgent(apiKey string, registry *ToolRegistry) *Agent {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Agent{client: &client, registry: registry}
}

// Run sends one user request through the tool loop and returns the
// model's final text. Tool calls are executed against the registry; their
// outputs (including business failures, which tools return as data) are
// fed back to the model.
func (a *Agent) Run(ctx context.Context, userInput string) (string, error) {
	params := responses.ResponseNewParams{
		Model:        shared.ResponsesModel(shared.ChatModelGPT4o),
		Instructions: openai.String(systemPrompt),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: openai.String(userInput),
		},
		Tools: a.registry.ToOpenAITools(),
	}

	for round := 0; round < maxToolRounds; round++ {
		resp, err := a.client.Responses.New(ctx, params)
		if err != nil {
			return "", fmt.Errorf("openai responses error: %w", err)
		}

		var outputs responses.ResponseInputParam
		for _, item := range resp.Output {
			if item.Type != "function_call" {
				continue
			}
			call := item.AsFunctionCall()
			result := a.callTool(ctx, call.Name, call.Arguments)
			outputs = append(outputs, responses.ResponseInputItemParamOfFunctionCallOutput(call.CallID, result))
		}

		if len(outputs) == 0 {
			return resp.OutputText(), nil
		}

		params.PreviousResponseID = openai.String(resp.ID)
		params.Input = responses.ResponseNewParamsInputUnion{OfInputItemList: outputs}
	}

	return "", fmt.Errorf("tool loop did not settle after %d rounds", maxToolRounds)
}

func (a *Agent) callTool(ctx context.Context, name, rawArgs string) string {
	tool, ok := a.registry.Get(name)
	if !ok {
		return fmt.Sprintf("Error: unknown tool %s", name)
	}

	params := map[string]any{}
	if rawArgs != "" {
		if err := json.Unmarshal([]byte(rawArgs), &params); err != nil {
			return fmt.Sprintf("Error: invalid arguments for %s: %v", name, err)
		}
	}

	log.Printf("tool call: %s %s", name, rawArgs)
	result, err := tool.Handler(ctx, params)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	return result
}
