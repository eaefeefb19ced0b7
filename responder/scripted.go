package responder

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/roundtable/core"
)

// Scripted responders produce deterministic, templated content. They are the
// offline defaults: runs complete without any external service, which makes
// them the backbone of examples and tests. Content is opaque to the engine;
// swapping a scripted role for a model-backed one changes nothing upstream.

// ResearcherOptions configures a Researcher instance.
type ResearcherOptions struct {
	// MemoryStore lets the researcher carry findings across cycles. Optional.
	MemoryStore core.MemoryStore
}

// Researcher gathers and synthesizes information. The first response covers
// the problem space; later responses deepen the analysis and, when a memory
// store is configured, recall notes from earlier cycles.
type Researcher struct {
	memory core.MemoryStore
}

// NewResearcher constructs a scripted researcher.
func NewResearcher(optFns ...func(o *ResearcherOptions)) *Researcher {
	opts := ResearcherOptions{}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Researcher{memory: opts.MemoryStore}
}

// Respond implements core.Responder.
func (r *Researcher) Respond(_ context.Context, s *core.State) error {
	var content string

	if _, answered := s.LatestResponseFrom(core.RoleResearcher); !answered {
		content = fmt.Sprintf("Initial research on '%s':\n\n", s.Task) +
			"1. Key aspects of the problem:\n" +
			"   - The problem involves multiple stakeholders\n" +
			"   - There are technical and non-technical components\n" +
			"   - Time constraints will affect the solution\n\n" +
			"2. Potential approaches:\n" +
			"   - Approach A: Quick implementation, moderate results\n" +
			"   - Approach B: Longer timeline, more comprehensive\n" +
			"   - Approach C: Hybrid solution with phased delivery"
	} else {
		content = fmt.Sprintf("Additional research on '%s':\n\n", s.Task) +
			"3. Detailed analysis of approaches:\n" +
			"   - Approach A strengths: faster implementation, lower cost\n" +
			"   - Approach B strengths: more complete solution, better long-term results\n" +
			"   - Approach C strengths: balances time constraints with solution quality\n\n" +
			"4. Recommended approach based on research: Approach C (Hybrid solution)"
		content += r.recall(s)
	}

	r.remember(s, content)
	respond(s, core.RoleResearcher, content)

	return nil
}

// recall surfaces notes stored in earlier cycles.
func (r *Researcher) recall(s *core.State) string {
	if r.memory == nil {
		return ""
	}
	hits, err := r.memory.Search(s.RunID, "", 3)
	if err != nil || len(hits) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n\nNotes recalled from earlier cycles:\n")
	for _, hit := range hits {
		line := hit.Content
		if idx := strings.IndexByte(line, '\n'); idx >= 0 {
			line = line[:idx]
		}
		fmt.Fprintf(&b, "- %s\n", line)
	}
	return b.String()
}

func (r *Researcher) remember(s *core.State, content string) {
	if r.memory == nil {
		return
	}
	_ = r.memory.Store(s.RunID, content, map[string]any{"iteration": s.Iteration})
}

// Critic identifies weaknesses in the latest research and suggests
// improvements.
type Critic struct{}

// NewCritic constructs a scripted critic.
func NewCritic() *Critic { return &Critic{} }

// Respond implements core.Responder.
func (c *Critic) Respond(_ context.Context, s *core.State) error {
	content := "Critique of the research:\n\n" +
		"Strengths:\n" +
		"- Good identification of multiple approaches\n" +
		"- Consideration of stakeholder needs\n" +
		"- Evidence-based recommendations\n\n" +
		"Weaknesses:\n" +
		"- Insufficient detail on implementation steps\n" +
		"- Limited consideration of resource constraints\n" +
		"- Missing risk assessment for each approach\n\n" +
		"Recommended focus: Develop a phased implementation plan with risk mitigation strategies."

	respond(s, core.RoleCritic, content)

	return nil
}

// Executor turns the accumulated research and critique into a concrete,
// phased implementation plan.
type Executor struct{}

// NewExecutor constructs a scripted executor.
func NewExecutor() *Executor { return &Executor{} }

// Respond implements core.Responder.
func (e *Executor) Respond(_ context.Context, s *core.State) error {
	content := fmt.Sprintf("Implementation plan for task '%s':\n\n", s.Task) +
		"Phase 1: Setup and Initial Implementation\n" +
		"- Establish project team and roles\n" +
		"- Define success metrics and KPIs\n" +
		"- Milestone: Basic framework operational\n\n" +
		"Phase 2: Core Development\n" +
		"- Implement primary functionality\n" +
		"- Create monitoring system\n" +
		"- Milestone: Core system operational\n\n" +
		"Phase 3: Refinement and Expansion\n" +
		"- Optimize performance and fold in feedback\n" +
		"- Milestone: Complete solution deployed\n\n" +
		"Risk Mitigation:\n" +
		"- Resource constraints -> prioritization framework established\n" +
		"- Technical challenges -> expert advisors identified\n" +
		"- Timeline pressure -> buffer periods built into schedule"

	respond(s, core.RoleExecutor, content)

	return nil
}
