// Package category describes the document kinds the pipeline produces. A
// category bundles everything that varies per document kind: the drafted
// content schema (narrative, tabular, and list keys), the template
// placeholders or built-up layout the renderer applies, the prompt template
// feeding the drafting service, and the output path scheme.
package category

import "fmt"

// BlockKind enumerates the building blocks of a built-up document layout.
type BlockKind int

const (
	// BlockHeading emits a numbered section heading.
	BlockHeading BlockKind = iota
	// BlockNarrative emits the draft's narrative field named by Key.
	BlockNarrative
	// BlockTable emits the draft's tabular field named by Key as a
	// two-column bordered table.
	BlockTable
	// BlockBullets emits the draft's list field named by Key as bullets,
	// flattening any nested groups depth-first.
	BlockBullets
	// BlockStatic emits fixed paragraph text from the category itself.
	BlockStatic
	// BlockStaticBullets emits fixed bullet lines from the category itself.
	BlockStaticBullets
)

// Block is one element of a built-up layout, emitted in order.
type Block struct {
	Kind  BlockKind
	Text  string
	Key   string
	Items []string
}

// FormField maps an inline template token onto a record field. When Label is
// set, the token is only replaced inside the paragraph containing the label;
// an empty Label replaces the token wherever it appears.
type FormField struct {
	Label string
	Token string
	Field string
}

// Category is one document kind.
type Category struct {
	// Name identifies the category ("proposal", "quotation-request").
	Name string
	// Prefix and Subfolder feed the output path scheme:
	// (output dir)/(sanitized name)/(Subfolder)/(Prefix)_(id)_(sanitized name).docx
	Prefix    string
	Subfolder string

	// TitleFormat, when set, adds a centered title paragraph built from the
	// record name. TitlePrefix, when set, restyles an existing template
	// paragraph starting with that text instead.
	TitleFormat string
	TitlePrefix string

	// Narrative lists the required narrative keys of the drafted content.
	// Tables and Lists name the tabular and list keys.
	Narrative []string
	Tables    []string
	Lists     []string

	// Placeholders maps narrative keys onto the exact placeholder strings
	// embedded in the template. Empty for built-up categories.
	Placeholders map[string]string

	// FormFields are inline template tokens filled from the record.
	FormFields []FormField

	// Layout describes built-up documents appended after the template
	// content. Empty for placeholder-driven categories.
	Layout []Block

	// PromptTemplate is the base name of the pongo2 prompt templates
	// (<name>_system.tpl / <name>_user.tpl).
	PromptTemplate string

	// Temperature passed to the drafting service.
	Temperature float64
}

// Names of the built-in categories.
const (
	NameProposal         = "proposal"
	NameQuotationRequest = "quotation-request"
)

// All returns the built-in categories.
func All() []Category {
	return []Category{Proposal(), QuotationRequest()}
}

// ByName resolves a built-in category.
func ByName(name string) (Category, error) {
	for _, cat := range All() {
		if cat.Name == name {
			return cat, nil
		}
	}
	return Category{}, fmt.Errorf("category: unknown category %q", name)
}
