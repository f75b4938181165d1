package gdvalidate

import (
	"github.com/dekarrin/gdlint/gdast"
	"github.com/dekarrin/gdlint/gddiag"
	"github.com/dekarrin/gdlint/gdsem"
	"github.com/dekarrin/gdlint/internal/config"
)

// Run builds the Context for one file and runs every validator cfg
// enables, in the fixed registration order below. Order never affects
// the result, since validators are independent (spec §4.6); a stable
// run order just keeps output deterministic when two validators tie on
// by the (file, line, column, code) sort.
func Run(tree *gdast.Tree, model *gdsem.Model, cfg *config.AnalyzerConfig, file string) []gddiag.Diagnostic {
	ctx := &Context{
		File:      file,
		Tree:      tree,
		Model:     model,
		Config:    cfg,
		Collector: gddiag.NewCollector(),
	}

	for _, v := range enabledValidators(cfg) {
		v.Run(ctx)
	}

	diags := ctx.Collector.Diagnostics()
	if cfg.EnableSuppression {
		diags = gddiag.Suppress(tree, diags)
	}
	return diags
}

func enabledValidators(cfg *config.AnalyzerConfig) []Validator {
	var out []Validator
	add := func(enabled bool, v Validator) {
		if enabled {
			out = append(out, v)
		}
	}
	add(cfg.Validators.Type, typeValidator{})
	add(cfg.Validators.MemberAccess, memberAccessValidator{})
	add(cfg.Validators.ArgumentType, argumentTypeValidator{})
	add(cfg.Validators.Indexer, indexerValidator{})
	add(cfg.Validators.SemanticSignal, semanticSignalValidator{})
	add(cfg.Validators.GenericType, genericTypeValidator{})
	add(cfg.Validators.NullableAccess, nullableAccessValidator{})
	add(cfg.Validators.RedundantGuard, redundantGuardValidator{})
	add(cfg.Validators.DynamicCall, dynamicCallValidator{})
	add(cfg.Validators.SceneNode, sceneNodeValidator{})
	add(cfg.Validators.NodeLifecycle, nodeLifecycleValidator{})
	add(cfg.Validators.ReturnConsistency, returnConsistencyValidator{})
	add(cfg.Validators.AnnotationNarrowing, annotationValidator{})
	return out
}
