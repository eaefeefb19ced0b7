package responder

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/roundtable/core"
	"github.com/hupe1980/roundtable/internal/util"
	"github.com/hupe1980/roundtable/model"
)

// ModelOptions configure a model-backed role.
type ModelOptions struct {
	// Instruction is the system-level guidance sent with every call. It may
	// contain template markers rendered against run details: {{.Task}},
	// {{.Role}} and {{.Iteration}}. When empty a role-appropriate default is
	// used.
	Instruction string

	// MaxHistoryMessages bounds how much of the conversation with the
	// coordinator is replayed into the model request.
	MaxHistoryMessages int

	// Limiter caps model calls across the run. Model-backed roles should
	// share one limiter; nil means unlimited.
	Limiter *core.CallLimiter
}

// ModelResponder answers requests for a role by calling an LLM. It replays
// the role's conversation with the coordinator as chat history, so the model
// sees prior requests and its own earlier answers.
type ModelResponder struct {
	role        core.Role
	llm         model.Model
	instruction string
	maxHistory  int
	limiter     *core.CallLimiter
}

// NewModelResponder binds a role to a model.
func NewModelResponder(role core.Role, llm model.Model, optFns ...func(o *ModelOptions)) *ModelResponder {
	opts := ModelOptions{
		MaxHistoryMessages: 20,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Instruction == "" {
		opts.Instruction = defaultInstruction(role)
	}
	return &ModelResponder{
		role:        role,
		llm:         llm,
		instruction: opts.Instruction,
		maxHistory:  opts.MaxHistoryMessages,
		limiter:     opts.Limiter,
	}
}

// Role returns the role this responder is bound to.
func (r *ModelResponder) Role() core.Role { return r.role }

// Respond implements core.Responder.
func (r *ModelResponder) Respond(ctx context.Context, s *core.State) error {
	if r.limiter != nil {
		if err := r.limiter.Increment(); err != nil {
			return fmt.Errorf("model responder %s: %w", r.role, err)
		}
	}

	instructions, err := util.RenderTemplate(r.instruction, map[string]any{
		"Task":      s.Task,
		"Role":      r.role.String(),
		"Iteration": s.Iteration,
	})
	if err != nil {
		return fmt.Errorf("model responder %s: render instruction: %w", r.role, err)
	}

	req := model.Request{
		Instructions: instructions,
		Messages:     r.buildHistory(s),
	}
	if len(req.Messages) == 0 {
		req.Messages = []model.Message{{Role: "user", Text: s.Task}}
	}

	text, err := generate(ctx, r.llm, req)
	if err != nil {
		return fmt.Errorf("model responder %s: %w", r.role, err)
	}

	respond(s, r.role, text)
	return nil
}

// buildHistory replays the role's exchange with the coordinator: requests to
// the role become user turns, the role's own responses become assistant
// turns. Other roles' traffic stays out of the prompt.
func (r *ModelResponder) buildHistory(s *core.State) []model.Message {
	var history []model.Message
	for _, msg := range s.Messages {
		switch {
		case msg.Kind == core.KindRequest && msg.AddressedTo(r.role):
			history = append(history, model.Message{Role: "user", Text: msg.Content})
		case msg.Kind == core.KindResponse && msg.From == r.role:
			history = append(history, model.Message{Role: "assistant", Text: msg.Content})
		}
	}
	if r.maxHistory > 0 && len(history) > r.maxHistory {
		history = history[len(history)-r.maxHistory:]
	}
	return history
}

// generate drains a model's channels and returns the final text.
func generate(ctx context.Context, llm model.Model, req model.Request) (string, error) {
	respCh, errCh := llm.Generate(ctx, req)

	var final string
	for resp := range respCh {
		if !resp.Partial {
			final = resp.Text
		}
	}
	if err := <-errCh; err != nil {
		return "", err
	}
	if strings.TrimSpace(final) == "" {
		return "", fmt.Errorf("model returned empty response")
	}
	return final, nil
}

func defaultInstruction(role core.Role) string {
	switch role {
	case core.RoleResearcher:
		return "You are a research specialist in a collaborative problem-solving group. " +
			"Gather relevant findings, constraints, and best practices for the request and report them concisely."
	case core.RoleCritic:
		return "You are a critical reviewer in a collaborative problem-solving group. " +
			"Identify gaps, risks, and weaknesses in the material you are given and suggest concrete improvements."
	case core.RoleExecutor:
		return "You are an implementation specialist in a collaborative problem-solving group. " +
			"Turn the research and critique you are given into an actionable, step-by-step plan."
	case core.RoleEvaluator:
		return "You are a quality evaluator in a collaborative problem-solving group. " +
			"Assess the proposed solution against the original task and report strengths and weaknesses."
	default:
		return "You are a specialist in a collaborative problem-solving group. " +
			"Answer the coordinator's requests concisely and concretely."
	}
}
