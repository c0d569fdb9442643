package openrouter

import (
	"slices"
	"strings"

	"github.com/alphadose/haxmap"

	"github.com/latchlm/latchlm/core"
)

// Model is an OpenRouter model identifier such as "openai/gpt-4o".
// OpenRouter routes to a large and changing set of models, so any non-empty
// name is accepted; the API rejects unknown ones.
type Model string

func (m Model) ID() string {
	return string(m)
}

// Info returns the descriptor learned from ListModels, or the ID as name.
func (m Model) Info() core.ModelInfo {
	if info, ok := known.Get(string(m)); ok {
		return info
	}
	return core.ModelInfo{ID: string(m), Name: string(m)}
}

// ParseModel validates a model identifier.
func ParseModel(id string) (Model, error) {
	if strings.TrimSpace(id) == "" {
		return "", core.NewInvalidModelError(providerName, id)
	}
	return Model(id), nil
}

// known caches every model returned by ListModels in this process.
var known = haxmap.New[string, core.ModelInfo]()

func remember(list []core.ModelInfo) {
	for _, m := range list {
		known.Set(m.ID, m)
	}
}

// Models returns the models learned from ListModels, sorted by ID.
func Models() []core.ModelInfo {
	list := make([]core.ModelInfo, 0, known.Len())
	known.ForEach(func(_ string, info core.ModelInfo) bool {
		list = append(list, info)
		return true
	})
	slices.SortFunc(list, func(a, b core.ModelInfo) int { return strings.Compare(a.ID, b.ID) })
	return list
}

func resolveModel(m core.Model) (Model, error) {
	if m == nil {
		return "", core.NewInvalidModelError(providerName, "")
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

// Catalog returns the model catalog of the OpenRouter adapter.
func Catalog() core.Catalog { return catalog{} }

var (
	_ core.Model     = Model("")
	_ core.Describer = Model("")
)
