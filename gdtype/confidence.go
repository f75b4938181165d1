package gdtype

// MemberConfidence grades how sure a member access's resolution is
// (spec §4.4, distinct from gdsym's cross-file reference confidence
// though the same three tiers apply).
type MemberConfidence int

const (
	// MemberStrict: the caller has a concrete type that owns the
	// member, directly or by inheritance.
	MemberStrict MemberConfidence = iota
	// MemberPotential: the caller is narrowed via `is T` where T owns
	// the member, or the member belongs to a duck constraint already
	// required in the path.
	MemberPotential
	// MemberNameMatch: neither of the above; the identifier merely
	// matches by name (or doesn't resolve at all).
	MemberNameMatch
)

func (c MemberConfidence) String() string {
	switch c {
	case MemberStrict:
		return "Strict"
	case MemberPotential:
		return "Potential"
	default:
		return "NameMatch"
	}
}
