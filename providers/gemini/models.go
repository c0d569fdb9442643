package gemini

import (
	"slices"

	"github.com/latchlm/latchlm/core"
)

// Model is a Gemini model variant.
type Model string

// Supported Gemini models.
const (
	Flash20         Model = "gemini-2.0-flash"
	Flash20Lite     Model = "gemini-2.0-flash-lite"
	Flash25         Model = "gemini-2.5-flash"
	Pro25           Model = "gemini-2.5-pro"
	Flash20Thinking Model = "gemini-2.0-flash-thinking-exp-01-21"
)

// models is the static list of supported models.
var models = []core.ModelInfo{
	{ID: string(Flash20), Name: "Gemini 2.0 Flash"},
	{ID: string(Flash20Lite), Name: "Gemini 2.0 Flash Lite"},
	{ID: string(Flash25), Name: "Gemini 2.5 Flash"},
	{ID: string(Pro25), Name: "Gemini 2.5 Pro"},
	{ID: string(Flash20Thinking), Name: "Gemini 2.0 Flash Thinking"},
}

// ID returns the identifier used in the request path.
func (m Model) ID() string {
	return string(m)
}

// Info returns the model descriptor. Unknown values get their ID as name.
func (m Model) Info() core.ModelInfo {
	if i := slices.IndexFunc(models, func(info core.ModelInfo) bool { return info.ID == string(m) }); i >= 0 {
		return models[i]
	}
	return core.ModelInfo{ID: string(m), Name: string(m)}
}

// Valid reports whether m is one of the supported models.
func (m Model) Valid() bool {
	return slices.ContainsFunc(models, func(info core.ModelInfo) bool { return info.ID == string(m) })
}

// ParseModel resolves a model identifier.
func ParseModel(id string) (Model, error) {
	m := Model(id)
	if !m.Valid() {
		return "", core.NewInvalidModelError(providerName, id)
	}
	return m, nil
}

// Models returns the supported models.
func Models() []core.ModelInfo {
	return slices.Clone(models)
}

// resolveModel accepts any core.Model whose ID is a supported Gemini model.
func resolveModel(m core.Model) (Model, error) {
	if m == nil {
		return "", core.NewInvalidModelError(providerName, "")
	}
	if gm, ok := core.AsModel[Model](m); ok && gm.Valid() {
		return gm, nil
	}
	return ParseModel(m.ID())
}

type catalog struct{}

func (catalog) Models() []core.ModelInfo { return Models() }

func (catalog) ParseModel(id string) (core.Model, error) {
	m, err := ParseModel(id)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Catalog returns the model catalog of the Gemini adapter.
func Catalog() core.Catalog { return catalog{} }

var (
	_ core.Model     = Model("")
	_ core.Describer = Model("")
)
