package heuristics

import (
	"fmt"
	"strings"
)

// EvaluationPrompt builds the prompt asking the model to score one design
// against the full catalog and respond with a single JSON object.
func EvaluationPrompt() string {
	var b strings.Builder

	b.WriteString("As a UX expert, analyze this design image using Jakob Nielsen's 10 usability heuristics and modern design system principles.\n\n")
	b.WriteString("CRITICAL: Your analysis must be based on SPECIFIC VISUAL ELEMENTS you can see in the image. Reference actual UI components, colors, text, buttons, layout elements, spacing, and design patterns that are visible.\n\n")

	b.WriteString("CLASSIC USABILITY HEURISTICS (Nielsen's):\n")
	b.WriteString(describeKeys(NielsenKeys))
	b.WriteString("\nDESIGN SYSTEM EVALUATION CRITERIA (inspired by modern design systems like Red Hat's):\n")
	b.WriteString(describeKeys(DesignSystemKeys))

	b.WriteString(`
ANALYSIS APPROACH - For each heuristic, you MUST:
1. OBSERVE: Identify specific visual elements in the image (buttons, text, colors, spacing, icons, navigation, etc.)
2. EVALUATE: Assess how these visible elements perform against the heuristic
3. CITE: Reference the actual UI components you're evaluating in your reasoning
4. SCORE: Provide a score based on what you can actually see

IMPORTANT: Respond with ONLY valid JSON. Do not include any explanatory text before or after the JSON.

Provide your analysis in this exact JSON format:
{
    "overall_score": 85,
    "heuristic_scores": {`)

	// Example scores for every catalog key so the model mirrors the full key set.
	keys := Keys()
	for i, key := range keys {
		fmt.Fprintf(&b, "\n        %q: 7.5", key)
		if i < len(keys)-1 {
			b.WriteString(",")
		}
	}

	b.WriteString(`
    },
    "heuristic_reasoning": {`)
	for i, key := range keys {
		fmt.Fprintf(&b, "\n        %q: \"1-2 sentences citing the specific visual elements behind this score\"", key)
		if i < len(keys)-1 {
			b.WriteString(",")
		}
	}

	b.WriteString(`
    },
    "recommendations": ["Improve error messaging clarity", "Add loading states for better feedback", "Consider mobile-first responsive design"],
    "strengths": ["Clean visual hierarchy", "Consistent color scheme", "Clear navigation structure"],
    "areas_for_improvement": ["Add accessibility features", "Improve error handling", "Optimize for mobile screens"],
    "summary": "1-2 sentences about the overall visual design"
}

Rules:
- Overall score: 0-100 (integer)
- Heuristic scores: 0-10 (decimal, one decimal place)
- Heuristic reasoning: 1-2 sentences per heuristic explaining WHY that specific score was given
- CRITICAL: Each reasoning MUST reference specific visual elements you observe (colors, text, buttons, spacing, icons, layouts, etc.)
- DO NOT use generic terms - describe actual UI components you can see
- Include specific measurements, colors, text content, and UI elements when possible
- Include 3-5 specific recommendations based on observed issues
- Include 3-4 key strengths citing specific visual elements
- Include 3-4 areas for improvement referencing specific components
- Be specific and actionable in your recommendations
- Base everything on what you can actually see in the design image
- Consider accessibility, mobile responsiveness, and modern UX patterns
- Return ONLY the JSON object, no additional text
`)

	return b.String()
}

// describeKeys renders "- Title Case Key: description" lines for a key list.
func describeKeys(keys []string) string {
	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "- %s: %s\n", titleCase(key), Descriptions[key])
	}
	return b.String()
}

// titleCase converts a snake_case key to a Title Case label.
func titleCase(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
