// Package catalog holds the fixed, ordered list of required AMR genes and
// the resistance mechanism each one is annotated with. The catalog is loaded
// once at process start from a reference table and never mutated afterwards,
// so it is safe for concurrent reads by parallel sample pipelines.
package catalog

import (
	"embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/resistlab/amrburden/internal/model"
)

//go:embed top50_genes.csv
var defaultFS embed.FS

// RequiredGeneCount is the number of genes the trained model consumes. The
// feature list was selected by an external importance procedure; this service
// only consumes the resulting fixed set.
const RequiredGeneCount = 50

// Catalog is the immutable gene reference. The gene order is the order the
// scaler and predictor were fit with; everything downstream depends on it.
type Catalog struct {
	genes  []model.GeneFeature
	byName map[string]model.Mechanism
}

// Load reads an annotated catalog CSV from path, or the embedded default
// reference table when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		f, err := defaultFS.Open("top50_genes.csv")
		if err != nil {
			return nil, fmt.Errorf("opening embedded catalog: %w", err)
		}
		defer f.Close()
		return Parse(f)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a catalog table with header "AMR_Gene,Resistance_Mechanism".
// Mechanism labels are normalized (see NormalizeMechanism); duplicate gene
// names and wrong gene counts are load errors.
func Parse(r io.Reader) (*Catalog, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading catalog header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("catalog header has %d columns, want at least 2", len(header))
	}

	c := &Catalog{byName: make(map[string]model.Mechanism)}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading catalog row: %w", err)
		}
		name := strings.TrimSpace(rec[0])
		if name == "" {
			return nil, fmt.Errorf("catalog row %d has an empty gene name", len(c.genes)+1)
		}
		if _, exists := c.byName[name]; exists {
			return nil, fmt.Errorf("duplicate gene %q in catalog", name)
		}
		mech := NormalizeMechanism(rec[1])
		c.genes = append(c.genes, model.GeneFeature{Name: name, Mechanism: mech})
		c.byName[name] = mech
	}

	if len(c.genes) != RequiredGeneCount {
		return nil, fmt.Errorf("catalog has %d genes, want %d", len(c.genes), RequiredGeneCount)
	}
	return c, nil
}

// NormalizeMechanism collapses the annotation table's label variations into
// the closed mechanism set. Labels hinting at unclassified or generic
// resistance become Non-Specific Resistance, matching the training-time
// annotation cleanup.
func NormalizeMechanism(label string) model.Mechanism {
	trimmed := strings.TrimSpace(label)
	lower := strings.ToLower(trimmed)

	for _, word := range []string{"other", "unclassified", "unknown", "non-specific", "general"} {
		if strings.Contains(lower, word) {
			return model.MechanismNonSpecific
		}
	}

	switch {
	case lower == strings.ToLower(string(model.MechanismBetaLactamase)), strings.Contains(lower, "beta-lactamase"):
		return model.MechanismBetaLactamase
	case lower == strings.ToLower(string(model.MechanismAminoglycoside)):
		return model.MechanismAminoglycoside
	case lower == strings.ToLower(string(model.MechanismEffluxPump)):
		return model.MechanismEffluxPump
	case lower == strings.ToLower(string(model.MechanismMacrolide)):
		return model.MechanismMacrolide
	case lower == strings.ToLower(string(model.MechanismTargetMod)):
		return model.MechanismTargetMod
	}
	return model.MechanismNonSpecific
}

// Genes returns the catalog entries in their fixed order. Callers must treat
// the slice as read-only.
func (c *Catalog) Genes() []model.GeneFeature {
	return c.genes
}

// GeneNames returns the ordered gene names.
func (c *Catalog) GeneNames() []string {
	names := make([]string, len(c.genes))
	for i, g := range c.genes {
		names[i] = g.Name
	}
	return names
}

// MechanismOf reports the mechanism a gene is annotated with.
func (c *Catalog) MechanismOf(gene string) (model.Mechanism, bool) {
	m, ok := c.byName[gene]
	return m, ok
}

// Size returns the number of required genes.
func (c *Catalog) Size() int {
	return len(c.genes)
}

// GeneListText renders the required gene list as a plain-text download, one
// gene per line. Offered to users whose upload failed validation.
func (c *Catalog) GeneListText() string {
	return strings.Join(c.GeneNames(), "\n") + "\n"
}
