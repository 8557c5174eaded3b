// Package display provides human-readable names for machine codes.
//
// Rule: code is for machines, words are for humans.
// Use these functions in CLI output and reports. Keep raw codes for JSON
// fields, map keys, and equality comparisons.
package display

import "strings"

// --- Tags ---

var tags = map[string]string{
	"healthy":     "Healthy",
	"error":       "Defect Marker",
	"risky":       "Risky",
	"lesion":      "Lesion",
	"short_hair":  "Short Hair",
	"long_hair":   "Long Hair",
	"mammal_safe": "Mammal Safe",
}

// Tag returns the human-readable name for a tag code.
// Unknown codes are title-cased with underscores replaced.
func Tag(code string) string {
	if name, ok := tags[code]; ok {
		return name
	}
	return humanize(code)
}

// Tags renders a tag set as a comma-separated human-readable list.
func Tags(codes []string) string {
	out := make([]string, len(codes))
	for i, c := range codes {
		out[i] = Tag(c)
	}
	return strings.Join(out, ", ")
}

// --- Actions ---

var actions = map[string]string{
	"splice":      "Splice",
	"exclude":     "Exclude",
	"validate":    "Validate",
	"check_drift": "Check Drift",
	"log_error":   "Log Error",
	"flag_mito":   "Flag Mitochondrial",
	"reverse":     "Reverse",
	"complement":  "Complement",
}

// Action returns the human-readable name for an action directive.
// Parameterized directives keep their argument: "trim:4" -> "Trim (4)".
func Action(code string) string {
	if name, ok := actions[code]; ok {
		return name
	}
	if verb, arg, ok := strings.Cut(code, ":"); ok {
		return humanize(verb) + " (" + arg + ")"
	}
	return humanize(code)
}

// Actions renders an action set as a comma-separated human-readable list.
func Actions(codes []string) string {
	out := make([]string, len(codes))
	for i, c := range codes {
		out[i] = Action(c)
	}
	return strings.Join(out, ", ")
}

// --- Recommendations ---

var recKinds = map[string]string{
	"increase_penalty": "Increase Penalty",
	"deprioritize":     "Deprioritize",
}

// RecKind returns the human-readable name for a recommendation kind.
func RecKind(code string) string {
	if name, ok := recKinds[code]; ok {
		return name
	}
	return humanize(code)
}

// humanize turns a snake_case code into spaced Title Case.
func humanize(code string) string {
	words := strings.Split(code, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
