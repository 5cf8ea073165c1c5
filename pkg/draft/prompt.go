package draft

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/Renewable-Energy-Systems/capital-equipment/pkg/category"
)

//go:embed prompts/*.tpl
var promptFS embed.FS

var (
	promptSetOnce sync.Once
	promptSet     *pongo2.TemplateSet
)

func templates() *pongo2.TemplateSet {
	promptSetOnce.Do(func() {
		promptSet = pongo2.NewSet("prompts", pongo2.NewFSLoader(promptFS))
	})
	return promptSet
}

// Prompt is the message pair sent to the drafting service.
type Prompt struct {
	System string
	User   string
}

// BuildPrompt renders the category's system and user prompts with the
// request context.
func BuildPrompt(cat category.Category, req Request) (Prompt, error) {
	data := pongo2.Context{"item": req.Record.Name}
	for key, value := range req.Context {
		data[key] = value
	}

	system, err := renderPrompt(cat.PromptTemplate+"_system.tpl", data)
	if err != nil {
		return Prompt{}, err
	}
	user, err := renderPrompt(cat.PromptTemplate+"_user.tpl", data)
	if err != nil {
		return Prompt{}, err
	}
	return Prompt{System: system, User: user}, nil
}

func renderPrompt(name string, data pongo2.Context) (string, error) {
	tpl, err := templates().FromFile("prompts/" + name)
	if err != nil {
		return "", fmt.Errorf("draft: load prompt %q: %w", name, err)
	}
	out, err := tpl.Execute(data)
	if err != nil {
		return "", fmt.Errorf("draft: render prompt %q: %w", name, err)
	}
	return strings.TrimSpace(out), nil
}
