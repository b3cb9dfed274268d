// Package query holds shared query primitives used by repositories.
package query

// Pagination carries optional limit/offset values parsed from a request.
type Pagination struct {
	Limit  *int
	Offset *int
}

// EffectiveLimit returns the configured limit or the fallback.
func (p *Pagination) EffectiveLimit(fallback int) int {
	if p == nil || p.Limit == nil || *p.Limit < 1 {
		return fallback
	}
	return *p.Limit
}

// EffectiveOffset returns the configured offset, or zero.
func (p *Pagination) EffectiveOffset() int {
	if p == nil || p.Offset == nil || *p.Offset < 0 {
		return 0
	}
	return *p.Offset
}
