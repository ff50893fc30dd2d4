package lexical

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/helix-supply/partdex/internal/domain/search/query"
)

// Boosts holds the tiered clause weights for the lexical query.
type Boosts struct {
	ExactID     float64 // exact identifier match
	FuzzyID     float64 // fuzzy/partial identifier match
	Name        float64
	Description float64
	Category    float64
}

// DefaultBoosts returns the standard tier weighting: exact part number
// dominates, then partial part number, then general field relevance.
func DefaultBoosts() Boosts {
	return Boosts{ExactID: 10, FuzzyID: 5, Name: 3, Description: 2, Category: 1}
}

// buildQuery assembles the tiered RediSearch query string. The tiers
// form a union (at least one must match); filters are appended as
// required clauses so they never contribute hits on their own.
func buildQuery(text string, filters query.Filters, b Boosts) string {
	tokens := strings.Fields(text)

	tiers := []string{
		weighted(fmt.Sprintf("@part_number:{%s}", escapeTag(text)), b.ExactID),
		weighted(fmt.Sprintf("@part_number_text:(%s)", fuzzyTerms(tokens)), b.FuzzyID),
		weighted(fmt.Sprintf("@name:(%s)", fuzzyTerms(tokens)), b.Name),
		weighted(fmt.Sprintf("@description:(%s)", fuzzyTerms(tokens)), b.Description),
		weighted(fmt.Sprintf("@category:(%s)", fuzzyTerms(tokens)), b.Category),
	}

	q := "(" + strings.Join(tiers, " | ") + ")"

	if filters.Category != nil {
		q += fmt.Sprintf(" @category_tag:{%s}", escapeTag(*filters.Category))
	}
	if filters.PhasedOut != nil {
		q += fmt.Sprintf(" @phased_out:{%s}", strconv.FormatBool(*filters.PhasedOut))
	}

	return q
}

func weighted(clause string, w float64) string {
	return fmt.Sprintf("(%s)=>{$weight:%s}", clause, strconv.FormatFloat(w, 'f', -1, 64))
}

// fuzzyTerms renders tokens with Levenshtein fuzzy markers (%term%).
// Terms shorter than three runes are matched exactly; fuzzy matching on
// them produces too much noise.
func fuzzyTerms(tokens []string) string {
	terms := make([]string, 0, len(tokens))
	for _, t := range tokens {
		esc := escapeTerm(t)
		if esc == "" {
			continue
		}
		if len([]rune(esc)) < 3 {
			terms = append(terms, esc)
			continue
		}
		terms = append(terms, "%"+esc+"%")
	}
	if len(terms) == 0 {
		return "*"
	}
	return strings.Join(terms, " ")
}

// termSpecials are characters with query syntax meaning in TEXT clauses.
const termSpecials = `,.<>{}[]"':;!@#$%^&*()-+=~/\|` + " "

func escapeTerm(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if strings.ContainsRune(termSpecials, r) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// escapeTag escapes a value for a TAG clause, where only the separator
// and braces are special but escaping the full set is harmless.
func escapeTag(s string) string {
	return escapeTerm(s)
}
