package openai

import (
	"slices"

	"github.com/latchlm/latchlm/core"
)

// Model is an OpenAI chat model.
type Model string

// Supported OpenAI models.
const (
	O3             Model = "o3"
	O3Pro          Model = "o3-pro"
	O3Mini         Model = "o3-mini"
	O4Mini         Model = "o4-mini"
	GPT5           Model = "gpt-5"
	GPT5Mini       Model = "gpt-5-mini"
	GPT5Nano       Model = "gpt-5-nano"
	GPT5ChatLatest Model = "gpt-5-chat-latest"
	GPT41          Model = "gpt-4.1"
	GPT41Mini      Model = "gpt-4.1-mini"
	GPT41Nano      Model = "gpt-4.1-nano"
	GPT4o          Model = "gpt-4o"
	GPT4oMini      Model = "gpt-4o-mini"
)

var models = []core.ModelInfo{
	{ID: string(O3), Name: "o3"},
	{ID: string(O3Pro), Name: "o3 Pro"},
	{ID: string(O3Mini), Name: "o3 Mini"},
	{ID: string(O4Mini), Name: "o4 Mini"},
	{ID: string(GPT5), Name: "GPT-5"},
	{ID: string(GPT5Mini), Name: "GPT-5 Mini"},
	{ID: string(GPT5Nano), Name: "GPT-5 Nano"},
	{ID: string(GPT5ChatLatest), Name: "GPT-5 Chat"},
	{ID: string(GPT41), Name: "GPT-4.1"},
	{ID: string(GPT41Mini), Name: "GPT-4.1 Mini"},
	{ID: string(GPT41Nano), Name: "GPT-4.1 Nano"},
	{ID: string(GPT4o), Name: "GPT-4o"},
	{ID: string(GPT4oMini), Name: "GPT-4o Mini"},
}

func (m Model) ID() string {
	return string(m)
}

func (m Model) Info() core.ModelInfo {
	if i := slices.IndexFunc(models, func(info core.ModelInfo) bool { return info.ID == string(m) }); i >= 0 {
		return models[i]
	}
	return core.ModelInfo{ID: string(m), Name: string(m)}
}

// Valid reports whether m is a supported model.
func (m Model) Valid() bool {
	return slices.ContainsFunc(models, func(info core.ModelInfo) bool { return info.ID == string(m) })
}

// ParseModel resolves a model identifier.
func ParseModel(id string) (Model, error) {
	if m := Model(id); m.Valid() {
		return m, nil
	}
	return "", core.NewInvalidModelError(providerName, id)
}

// Models returns the supported models.
func Models() []core.ModelInfo {
	return slices.Clone(models)
}

func resolveModel(m core.Model) (Model, error) {
	if m == nil {
		return "", core.NewInvalidModelError(providerName, "")
	}
	if om, ok := core.AsModel[Model](m); ok && om.Valid() {
		return om, nil
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

// Catalog returns the model catalog of the OpenAI adapter.
func Catalog() core.Catalog { return catalog{} }

var (
	_ core.Model     = Model("")
	_ core.Describer = Model("")
)
