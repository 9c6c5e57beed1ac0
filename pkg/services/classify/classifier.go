// Package classify infers construction categories from free-text work
// descriptions. The keyword strategy is deliberately pluggable: downstream
// services depend on the Classifier interface, not the keyword table.
package classify

import "strings"

// Result is a category guess with how sure the classifier is about it.
type Result struct {
	Category   string
	Confidence float64
}

// Classifier maps a free-text description to a construction category.
type Classifier interface {
	Classify(description string) Result
}

// DefaultCategory is returned when no keyword set matches.
const DefaultCategory = "general"

// keywordSet is one category's vocabulary. First matching set wins, so the
// table order matters.
type keywordSet struct {
	category string
	keywords []string
}

// defaultKeywordTable follows trade vocabulary: excavation before concrete so
// "excavate for footing" lands in sitework, finishes last as catch-alls.
var defaultKeywordTable = []keywordSet{
	{"demolition", []string{"demo", "demolish", "remove existing", "tear out", "strip"}},
	{"excavation", []string{"excavat", "grade", "grading", "backfill", "trench", "earthwork", "clear and grub", "track hoe"}},
	{"concrete", []string{"concrete", "footing", "foundation", "slab", "rebar", "cmu", "masonry", "grout", "psi"}},
	{"framing", []string{"fram", "stud", "joist", "rafter", "truss", "sheathing", "lumber", "lvl", "header"}},
	{"roofing", []string{"roof", "shingle", "underlayment", "flashing", "ridge", "gutter"}},
	{"electrical", []string{"electric", "wiring", "circuit", "panel", "conduit", "outlet", "breaker", "emt", "fixture"}},
	{"plumbing", []string{"plumb", "pipe", "drain", "water heater", "fixture rough", "sewer", "supply line", "pex"}},
	{"hvac", []string{"hvac", "duct", "furnace", "condenser", "air handler", "ventilation", "mini split"}},
	{"insulation", []string{"insulat", "batt", "r-19", "r-13", "blown", "foam"}},
	{"drywall", []string{"drywall", "gypsum", "sheetrock", "tape and", "texture"}},
	{"flooring", []string{"floor", "tile", "carpet", "hardwood", "lvp", "underlayment pad"}},
	{"painting", []string{"paint", "primer", "caulk", "stain"}},
	{"exterior", []string{"siding", "stucco", "brick veneer", "soffit", "fascia", "window", "door exterior", "deck"}},
	{"finish", []string{"trim", "cabinet", "countertop", "millwork", "hardware", "closet", "interior door"}},
	{"cleanup", []string{"cleanup", "final clean", "punch list", "dumpster", "haul"}},
}

type keywordClassifier struct {
	table []keywordSet
}

// NewKeywordClassifier returns the default keyword-table classifier.
func NewKeywordClassifier() Classifier {
	return &keywordClassifier{table: defaultKeywordTable}
}

// NewKeywordClassifierWithTable builds a classifier over a custom table,
// matched in slice order.
func NewKeywordClassifierWithTable(table map[string][]string, order []string) Classifier {
	sets := make([]keywordSet, 0, len(order))
	for _, cat := range order {
		sets = append(sets, keywordSet{category: cat, keywords: table[cat]})
	}
	return &keywordClassifier{table: sets}
}

func (c *keywordClassifier) Classify(description string) Result {
	text := strings.ToLower(description)
	for _, set := range c.table {
		hits := 0
		for _, kw := range set.keywords {
			if strings.Contains(text, kw) {
				hits++
			}
		}
		if hits > 0 {
			// One hit is a weak signal, three or more a strong one.
			conf := 0.6 + 0.15*float64(hits-1)
			if conf > 0.95 {
				conf = 0.95
			}
			return Result{Category: set.category, Confidence: conf}
		}
	}
	return Result{Category: DefaultCategory, Confidence: 0.3}
}
