package docx

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/Renewable-Energy-Systems/capital-equipment/pkg/category"
	"github.com/Renewable-Energy-Systems/capital-equipment/pkg/render"
)

// Config wires the renderer: one template path per category name. Templates
// are loaded at construction so a missing or unreadable template aborts
// before any record is processed.
type Config struct {
	// Templates maps category names onto template paths.
	Templates map[string]string

	// Theme overrides the default document styling tokens.
	Theme *theme.Manifest

	// Logger for per-document debug messages.
	Logger *slog.Logger
}

// Renderer renders drafted content into .docx documents.
type Renderer struct {
	templates map[string]*Template
	theme     *theme.Manifest
	logger    *slog.Logger
}

var _ render.Renderer = (*Renderer)(nil)

// New loads every configured template and constructs the renderer.
func New(cfg Config) (*Renderer, error) {
	if len(cfg.Templates) == 0 {
		return nil, fmt.Errorf("docx: no templates configured")
	}

	r := &Renderer{
		templates: make(map[string]*Template, len(cfg.Templates)),
		theme:     cfg.Theme,
		logger:    cfg.Logger,
	}
	if r.theme == nil {
		r.theme = render.DefaultTheme()
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}

	for name, path := range cfg.Templates {
		tpl, err := OpenTemplate(path)
		if err != nil {
			return nil, err
		}
		if !tpl.HasBulletStyle() {
			r.logger.Info("template has no bulleted-list style, using plain markers", "category", name)
		}
		r.templates[name] = tpl
	}
	return r, nil
}

// Name identifies the renderer in the registry.
func (r *Renderer) Name() string {
	return "docx"
}

// Render produces the document for one record at its derived output path.
// Reruns for an unchanged record yield the identical path and overwrite in
// place.
func (r *Renderer) Render(ctx context.Context, req render.Request) (render.RenderedDocument, error) {
	if err := ctx.Err(); err != nil {
		return render.RenderedDocument{}, err
	}

	cat := req.Category
	tpl, ok := r.templates[cat.Name]
	if !ok {
		return render.RenderedDocument{}, fmt.Errorf("%w: no template for category %q", render.ErrRender, cat.Name)
	}

	doc := tpl.instance()
	titleSize := render.TokenInt(r.theme, render.TokenFontTitle, 32)
	bodySize := render.TokenInt(r.theme, render.TokenFontBody, 22)

	if err := r.substitute(doc, req); err != nil {
		return render.RenderedDocument{}, err
	}
	if len(cat.Placeholders) > 0 {
		// Level the template body before the title is restyled, so
		// substituted narrative never keeps the placeholder run's
		// emphasis or size.
		doc.pinBodyRuns(bodySize)
	}

	if cat.TitleFormat != "" {
		doc.append(paragraph(fmt.Sprintf(cat.TitleFormat, req.Record.Name), paraOpts{center: true, bold: true, size: titleSize}))
		doc.append(paragraph("", paraOpts{}))
	}
	if cat.TitlePrefix != "" {
		doc.restyleTitle(cat.TitlePrefix, titleSize)
	}

	doc.append(r.buildLayout(tpl, req))

	path := render.OutputPath(req.OutputDir, cat, req.Record)
	if err := doc.save(path); err != nil {
		return render.RenderedDocument{}, fmt.Errorf("%w: %v", render.ErrRender, err)
	}

	r.logger.Debug("document rendered", "record", req.Record.ID, "category", cat.Name, "path", path)
	return render.RenderedDocument{
		RecordID:   req.Record.ID,
		OutputPath: path,
		Category:   cat.Name,
	}, nil
}

// substitute replaces the category's narrative placeholders and inline form
// fields. Each placeholder is substituted independently, preserving the
// surrounding template text; a required placeholder missing from the
// template fails the record.
func (r *Renderer) substitute(doc *document, req render.Request) error {
	cat := req.Category
	for _, key := range cat.Narrative {
		placeholder, ok := cat.Placeholders[key]
		if !ok {
			continue
		}
		if !doc.replaceAll(placeholder, req.Draft.Narrative[key]) {
			return fmt.Errorf("%w: %q", render.ErrPlaceholderMissing, key)
		}
	}

	for _, field := range cat.FormFields {
		value := req.Record.Field(field.Field)
		if value == "" {
			continue
		}
		if field.Label == "" {
			doc.replaceAll(field.Token, value)
			continue
		}
		doc.replaceInParagraph(field.Label, field.Token, value)
	}
	return nil
}

// buildLayout emits the category's built-up blocks in order.
func (r *Renderer) buildLayout(tpl *Template, req render.Request) string {
	cat := req.Category
	if len(cat.Layout) == 0 {
		return ""
	}

	bodySize := render.TokenInt(r.theme, render.TokenFontBody, 22)
	headerSize := render.TokenInt(r.theme, render.TokenFontTableHeader, 24)
	marker := render.Token(r.theme, render.TokenBulletMarker, "•")

	var b strings.Builder
	for _, block := range cat.Layout {
		switch block.Kind {
		case category.BlockHeading:
			b.WriteString(heading(block.Text))
		case category.BlockNarrative:
			b.WriteString(paragraph(req.Draft.Narrative[block.Key], paraOpts{size: bodySize}))
		case category.BlockTable:
			rows := make([][2]string, 0, len(req.Draft.Tables[block.Key]))
			for _, row := range req.Draft.Tables[block.Key] {
				rows = append(rows, [2]string{row.Parameter, row.Requirement})
			}
			b.WriteString(table([2]string{"Parameter", "Requirement"}, rows, headerSize, bodySize))
		case category.BlockBullets:
			for _, leaf := range render.FlattenBullets(req.Draft.Lists[block.Key]) {
				b.WriteString(bullet(leaf, tpl.bulletStyle, marker, bodySize))
			}
		case category.BlockStatic:
			text := strings.ReplaceAll(block.Text, "{name}", req.Record.Name)
			b.WriteString(paragraph(text, paraOpts{size: bodySize}))
		case category.BlockStaticBullets:
			for _, item := range block.Items {
				b.WriteString(bullet(item, tpl.bulletStyle, marker, bodySize))
			}
		}
	}
	return b.String()
}
