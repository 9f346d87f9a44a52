package metrics

// Metric attribute keys.
const (
	AttrMethod   = "method"
	AttrPath     = "path"
	AttrStatus   = "status"
	AttrProvider = "provider"
	AttrRuleset  = "ruleset"
	AttrHit      = "hit"
)
