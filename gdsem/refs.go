package gdsem

import (
	"github.com/dekarrin/gdlint/gdprovider"
	"github.com/dekarrin/gdlint/gdsym"
)

// FindReferences implements spec §4.5's get_references_to: it starts
// from gdsym's pure syntactic occurrence pass (every OccurrenceKind,
// all at NameMatch confidence) and upgrades each occurrence using this
// project's type information.
//
// Extends and type-annotation occurrences spell the type name directly
// with no duck-typing ambiguity, so they're always Strict. Read and
// call occurrences are graded by comparing the expression's statically
// known type at that position against declaredType: an exact match is
// Strict, an unresolved or Variant-typed site is Potential (consistent
// with it being declaredType, but not provably so), and anything else
// is left at NameMatch. Declaration and write occurrences stay at
// NameMatch — a declaration names the symbol itself, and an assignment
// target's type is the variable's, not evidence about the source being
// referenced.
func FindReferences(pm *gdsym.ProjectSemanticModel, runtime gdprovider.RuntimeProvider, symbolName, declaredType string) []gdsym.Occurrence {
	occs := pm.FindReferences(symbolName)
	if declaredType == "" {
		return occs
	}

	models := make(map[string]*Model, len(pm.ScriptPaths()))
	for _, path := range pm.ScriptPaths() {
		fm, ok := pm.FileModel(path)
		if !ok {
			continue
		}
		models[path] = New(fm.Tree, runtime)
	}

	out := make([]gdsym.Occurrence, len(occs))
	for i, occ := range occs {
		out[i] = occ
		switch occ.Kind {
		case gdsym.OccurrenceExtends, gdsym.OccurrenceTypeAnnotation:
			out[i].Confidence = gdsym.Strict
		case gdsym.OccurrenceRead, gdsym.OccurrenceCall:
			model, ok := models[occ.File]
			if !ok {
				continue
			}
			siteType := model.GetExpressionType(occ.Node)
			switch {
			case siteType == declaredType:
				out[i].Confidence = gdsym.Strict
			case siteType == "" || siteType == "Variant":
				out[i].Confidence = gdsym.Potential
			}
		}
	}
	return out
}
