package llm

import (
	"fmt"

	"github.com/cbroglie/mustache"
)

// DefaultPromptTemplate asks for a mentoring digest of a day's Claude Code
// sessions. It is a mustache template; {{{transcript}}} is replaced verbatim.
const DefaultPromptTemplate = `
You are a Senior Software Engineer and expert mentor analyzing a junior developer's coding session with **Claude Code**, an agentic AI coding assistant that can read/write files, run terminal commands, search codebases, and autonomously complete multi-step tasks.

Your goal: Extract actionable learning points that help this junior developer grow faster.

---

## ANALYSIS INSTRUCTIONS:

Analyze the session below and provide insights in these categories. Be specific, cite examples from the transcript, and focus on what's immediately actionable.

### TECHNICAL CONCEPTS LEARNED
- New language features, patterns, or frameworks introduced
- **Why** certain approaches were chosen (architecture decisions, tradeoffs)
- Concepts the junior should study deeper (with brief explanation of what to focus on)

### PROBLEM-SOLVING & DEBUGGING INSIGHTS
- How the problem was decomposed into smaller steps
- Debugging strategies demonstrated (print statements, logging, isolating issues)
- How edge cases or error scenarios were identified
- Any "aha moments" where the approach shifted

### PITFALLS, MISTAKES & TRADEOFFS
- Errors made and how they were caught/fixed
- Common mistakes to avoid in similar situations
- Tradeoffs discussed (performance vs readability, speed vs correctness, etc.)
- Security, scalability, or maintainability concerns raised

### CODE QUALITY & BEST PRACTICES
- Naming conventions, code organization, or structure improvements
- DRY (Don't Repeat Yourself) opportunities identified
- Error handling patterns demonstrated
- Testing strategies or suggestions made

### CLAUDE CODE PROMPTING EFFECTIVENESS
This section is critical. Analyze how effectively the junior used Claude Code:

**What worked well:**
- Prompts that gave clear context (the "why" behind the task)
- Good use of specificity (file names, function names, expected behavior)
- Effective multi-step task delegation
- Smart use of Claude Code's capabilities (file search, codebase understanding)

**What could be improved:**
- Vague prompts that required clarification (quote them)
- Missing context that would have helped (project structure, dependencies, constraints)
- Times when smaller, focused prompts would have worked better than large ones
- Opportunities to use commands like ` + "`/compact`, `/clear`, or `CLAUDE.md`" + ` for context

**Claude Code-specific tips for next time:**
- When to let Claude Code be autonomous vs when to guide step-by-step
- How to phrase requests to leverage its agentic capabilities
- How to review and verify Claude Code's file changes effectively
- When to ask for explanations vs when to ask for implementation

### ACTION ITEMS FOR THE JUNIOR
Provide 3-5 specific, prioritized things the junior should:
1. **Practice**: Hands-on exercises to reinforce learning
2. **Study**: Topics/docs to read with specific focus areas
3. **Remember**: Key takeaways to internalize

---

## OUTPUT FORMAT:
- Use bullet points for readability
- Be concise but specific; cite examples from the transcript when helpful
- Skip any category that has no relevant insights (don't force it)
- End with an encouraging note about growth observed in this session
---

## TRANSCRIPT TO ANALYZE:
{{{transcript}}}
`

// RenderPrompt fills a prompt template with the combined transcript. An empty
// template means DefaultPromptTemplate.
func RenderPrompt(template, transcript string) (string, error) {
	if template == "" {
		template = DefaultPromptTemplate
	}

	prompt, err := mustache.Render(template, map[string]string{
		"transcript": transcript,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render prompt template: %w", err)
	}
	return prompt, nil
}
