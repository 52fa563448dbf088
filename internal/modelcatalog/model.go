package modelcatalog

import "strings"

type Model struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
}

// Builtin returns the models the CLI knows out of the box.
func Builtin() []Model {
	return []Model{
		{ID: "gemini-3-flash-preview", Name: "Gemini 3 Flash", Provider: "gemini"},
		{ID: "gemini-2.5-flash-lite", Name: "Gemini 2.5 Flash Lite", Provider: "gemini"},
		{ID: "gemini-2.5-flash", Name: "Gemini 2.5 Flash", Provider: "gemini"},
		{ID: "gemini-2.5-pro", Name: "Gemini 2.5 Pro", Provider: "gemini"},
		{ID: "compound-beta", Name: "Groq Compound", Provider: "groq"},
		{ID: "meta-llama/llama-4-scout-17b-16e-instruct", Name: "Llama 4 Scout", Provider: "groq"},
		{ID: "llama3.2", Name: "Llama 3.2 (Ollama)", Provider: "ollama"},
	}
}

// Find returns the catalog entry with the given ID.
func Find(models []Model, id string) (Model, bool) {
	for _, m := range models {
		if m.ID == id {
			return m, true
		}
	}
	return Model{}, false
}

// DetectProvider maps a model ID to its provider. Hosted model families
// carry their provider in the ID prefix; anything unrecognized is assumed
// to be a local Ollama model.
func DetectProvider(model string) string {
	switch {
	case strings.HasPrefix(model, "gemini"):
		return "gemini"
	case strings.HasPrefix(model, "compound"),
		strings.HasPrefix(model, "meta-llama"),
		strings.HasPrefix(model, "llama-"):
		return "groq"
	default:
		return "ollama"
	}
}
