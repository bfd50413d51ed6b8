package artifact

// ProviderNamespace prefixes every resolved model identifier.
const ProviderNamespace = "openrouter"

// DefaultModel is used for selectors missing from the model table.
const DefaultModel = "google/gemini-3-flash-preview"

var modelTable = map[string]string{
	"gemini-3-flash":  "google/gemini-3-flash-preview",
	"claude-sonnet-4": "anthropic/claude-sonnet-4",
	"gpt-4o":          "openai/gpt-4o",
}

// ModelSelectors lists the recognized selectors.
func ModelSelectors() []string {
	return []string{"gemini-3-flash", "claude-sonnet-4", "gpt-4o"}
}

// ResolveModel maps a selector to the fully-qualified provider model id.
func ResolveModel(selector string) string {
	base, ok := modelTable[selector]
	if !ok {
		base = DefaultModel
	}
	return ProviderNamespace + "/" + base
}

// IsKnownSelector reports whether selector is in the model table.
func IsKnownSelector(selector string) bool {
	_, ok := modelTable[selector]
	return ok
}
