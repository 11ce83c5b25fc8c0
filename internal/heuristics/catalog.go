// Package heuristics defines the fixed evaluation framework used to score a
// design: Nielsen's 10 usability heuristics plus 6 modern design system
// principles. The catalog is a process-wide constant; every analysis record's
// per-heuristic maps are keyed by it.
package heuristics

// Nielsen's classic usability heuristics, in presentation order.
var NielsenKeys = []string{
	"visibility_of_system_status",
	"match_system_real_world",
	"user_control_freedom",
	"consistency_standards",
	"error_prevention",
	"recognition_rather_than_recall",
	"flexibility_efficiency",
	"aesthetic_minimalist_design",
	"error_recovery",
	"help_documentation",
}

// Design system evaluation criteria, in presentation order.
var DesignSystemKeys = []string{
	"color_accessibility_usage",
	"typography_hierarchy",
	"design_token_consistency",
	"brand_voice_expression",
	"responsive_adaptability",
	"interaction_feedback",
}

// Descriptions maps every heuristic key to its human-readable definition.
var Descriptions = map[string]string{
	"visibility_of_system_status":    "The system should keep users informed about what is happening",
	"match_system_real_world":        "The system should speak the users' language and follow real-world conventions",
	"user_control_freedom":           "Users need to feel in control and have clear ways to undo actions",
	"consistency_standards":          "Follow platform conventions and maintain internal consistency",
	"error_prevention":               "Prevent problems from occurring in the first place",
	"recognition_rather_than_recall": "Make elements visible rather than requiring memorization",
	"flexibility_efficiency":         "Provide shortcuts and customization for expert users",
	"aesthetic_minimalist_design":    "Avoid unnecessary elements and focus on essential content",
	"error_recovery":                 "Help users recognize, diagnose, and recover from errors",
	"help_documentation":             "Provide easily searchable help when needed",

	"color_accessibility_usage": "Colors should be accessible, meaningful, and follow semantic usage patterns",
	"typography_hierarchy":      "Text should establish clear hierarchy using appropriate scales, weights, and spacing",
	"design_token_consistency":  "Visual properties should follow consistent token-based design patterns",
	"brand_voice_expression":    "Design should authentically express brand personality and values",
	"responsive_adaptability":   "Interface should work seamlessly across different screen sizes and contexts",
	"interaction_feedback":      "User actions should provide clear, immediate, and appropriate feedback",
}

// Keys returns all catalog keys in order: Nielsen heuristics first, then
// design system criteria. The returned slice is a copy.
func Keys() []string {
	keys := make([]string, 0, len(NielsenKeys)+len(DesignSystemKeys))
	keys = append(keys, NielsenKeys...)
	keys = append(keys, DesignSystemKeys...)
	return keys
}

// Contains reports whether key is part of the catalog.
func Contains(key string) bool {
	_, ok := Descriptions[key]
	return ok
}

// Count is the number of catalog entries.
func Count() int {
	return len(Descriptions)
}
