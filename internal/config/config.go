// Package config loads the analyzer's TOML configuration: per-validator
// enable/disable switches, per-code severity overrides, the nullable
// access validator's strictness tier, and the suppression-comment
// toggle. The loading pattern follows the teacher's resource-bundle
// loader: a flat struct decoded directly with BurntSushi/toml, defaults
// filled in after decode rather than via struct tags.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/dekarrin/gdlint/gddiag"
)

// NullStrictness is the nullable access validator's four-tier
// strictness (spec §4.6).
type NullStrictness string

const (
	NullError   NullStrictness = "error"
	NullStrict  NullStrictness = "strict"
	NullNormal  NullStrictness = "normal"
	NullRelaxed NullStrictness = "relaxed"
	NullOff     NullStrictness = "off"
)

// Validators lists the toggle for every C7 concern by its config key.
// The zero value of AnalyzerConfig (all false before DefaultConfig
// fills it in) must never be handed to the orchestrator directly.
type Validators struct {
	Type            bool `toml:"type"`
	MemberAccess    bool `toml:"member_access"`
	ArgumentType    bool `toml:"argument_type"`
	Indexer         bool `toml:"indexer"`
	SemanticSignal  bool `toml:"semantic_signal"`
	GenericType     bool `toml:"generic_type"`
	NullableAccess  bool `toml:"nullable_access"`
	RedundantGuard  bool `toml:"redundant_guard"`
	DynamicCall     bool `toml:"dynamic_call"`
	SceneNode       bool `toml:"scene_node"`
	NodeLifecycle   bool `toml:"node_lifecycle"`
	ReturnConsistency bool `toml:"return_consistency"`
	AnnotationNarrowing bool `toml:"annotation_narrowing"`
}

// AnalyzerConfig is the root of the TOML document loaded from
// `.gdlint.toml` (or an equivalent path the caller supplies).
type AnalyzerConfig struct {
	Validators        Validators        `toml:"validators"`
	SeverityOverrides map[string]string `toml:"severity_overrides"`
	NullStrictness    NullStrictness    `toml:"null_strictness"`
	EnableSuppression bool              `toml:"enable_suppression_comments"`
}

// DefaultConfig returns the configuration the orchestrator uses when no
// file is present: every validator on, default severities, Normal
// nullable strictness, suppression comments honored.
func DefaultConfig() *AnalyzerConfig {
	return &AnalyzerConfig{
		Validators: Validators{
			Type: true, MemberAccess: true, ArgumentType: true, Indexer: true,
			SemanticSignal: true, GenericType: true, NullableAccess: true,
			RedundantGuard: true, DynamicCall: true, SceneNode: true,
			NodeLifecycle: true, ReturnConsistency: true, AnnotationNarrowing: true,
		},
		SeverityOverrides: make(map[string]string),
		NullStrictness:    NullNormal,
		EnableSuppression: true,
	}
}

// Load reads and decodes the TOML document at path, filling in any
// field BurntSushi/toml left at its zero value with DefaultConfig's
// value — a config file only needs to name what it overrides.
func Load(path string) (*AnalyzerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, err
	}
	if cfg.NullStrictness == "" {
		cfg.NullStrictness = NullNormal
	}
	return cfg, nil
}

// SeverityFor resolves code's effective severity: an override from the
// config if present, else the code's built-in default.
func (c *AnalyzerConfig) SeverityFor(code gddiag.Code) gddiag.Severity {
	if raw, ok := c.SeverityOverrides[code.String()]; ok {
		switch raw {
		case "Error":
			return gddiag.Error
		case "Warning":
			return gddiag.Warning
		case "Hint":
			return gddiag.Hint
		}
	}
	return code.DefaultSeverity()
}
