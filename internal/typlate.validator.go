package internal

// UnknownField describes a placeholder whose name is not in the schema
type UnknownField struct {
	Name        string
	Position    Position
	Suggestions []string
}

// Validate checks every placeholder against known and returns the first
// offending one in source order, or nil when all names resolve.
func Validate(segments []Segment, known func(name string) bool) *UnknownField {
	for _, seg := range segments {
		if seg.IsPlaceholder() && !known(seg.Text) {
			return &UnknownField{Name: seg.Text, Position: seg.Position}
		}
	}
	return nil
}

// ValidateAll is like Validate but collects every offending placeholder.
func ValidateAll(segments []Segment, known func(name string) bool) []UnknownField {
	var unknown []UnknownField
	for _, seg := range segments {
		if seg.IsPlaceholder() && !known(seg.Text) {
			unknown = append(unknown, UnknownField{Name: seg.Text, Position: seg.Position})
		}
	}
	return unknown
}

// WithSuggestions fills Suggestions from candidates
func (u *UnknownField) WithSuggestions(candidates []string, maxSuggestions int) *UnknownField {
	u.Suggestions = FindSimilarStrings(u.Name, candidates, maxSuggestions)
	return u
}
