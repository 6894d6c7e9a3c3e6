// Package filter evaluates a recipe collection against a composable search
// specification.
package filter

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/chef-fest/backend/internal/models"
)

// TopRatedThreshold is the minimum rating a recipe needs to count as top rated.
const TopRatedThreshold = 4.5

// AllCategories disables the category constraint.
const AllCategories = "All"

// ErrInvalidSpec is returned when a filter parameter cannot be parsed.
var ErrInvalidSpec = errors.New("invalid filter")

// PriceRange is a price bracket. The zero value places no constraint.
type PriceRange string

const (
	PriceAny     PriceRange = ""
	PriceUnder10 PriceRange = "under-10"
	Price10To20  PriceRange = "10-20"
	Price20To30  PriceRange = "20-30"
	PriceOver30  PriceRange = "over-30"
)

var priceAliases = map[string]PriceRange{
	"":          PriceAny,
	"all":       PriceAny,
	"under-10":  PriceUnder10,
	"under $10": PriceUnder10,
	"10-20":     Price10To20,
	"$10-$20":   Price10To20,
	"20-30":     Price20To30,
	"$20-$30":   Price20To30,
	"over-30":   PriceOver30,
	"over $30":  PriceOver30,
}

// ParsePriceRange accepts the bracket keys and their display labels,
// case-insensitively.
func ParsePriceRange(s string) (PriceRange, error) {
	p, ok := priceAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return PriceAny, fmt.Errorf("%w: unknown price range %q", ErrInvalidSpec, s)
	}
	return p, nil
}

// Contains reports whether price falls inside the bracket. Lower bounds are
// inclusive, upper bounds exclusive.
func (p PriceRange) Contains(price float64) bool {
	switch p {
	case PriceUnder10:
		return price < 10
	case Price10To20:
		return price >= 10 && price < 20
	case Price20To30:
		return price >= 20 && price < 30
	case PriceOver30:
		return price >= 30
	default:
		return true
	}
}

// Spec is one query's set of constraints. Every field defaults to no
// constraint; a recipe matches when it satisfies all active fields.
type Spec struct {
	Query       string
	Category    string
	Price       PriceRange
	Vegetarian  bool
	Trending    bool
	Recommended bool
	TopRated    bool
}

// ParseSpec builds a Spec from request query parameters.
func ParseSpec(values url.Values) (Spec, error) {
	spec := Spec{
		Query:    values.Get("q"),
		Category: values.Get("category"),
	}

	price, err := ParsePriceRange(values.Get("price"))
	if err != nil {
		return Spec{}, err
	}
	spec.Price = price

	flags := []struct {
		name string
		dst  *bool
	}{
		{"vegetarian", &spec.Vegetarian},
		{"trending", &spec.Trending},
		{"recommended", &spec.Recommended},
		{"topRated", &spec.TopRated},
	}
	for _, f := range flags {
		raw := values.Get(f.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return Spec{}, fmt.Errorf("%w: %s must be a boolean", ErrInvalidSpec, f.name)
		}
		*f.dst = v
	}

	return spec, nil
}

func (s Spec) query() string {
	return strings.ToLower(s.Query)
}

func (s Spec) categoryActive() bool {
	return s.Category != "" && s.Category != AllCategories
}

// ActiveCount returns how many filter constraints are in effect. The text
// query is not a filter and is not counted.
func (s Spec) ActiveCount() int {
	n := 0
	for _, active := range []bool{
		s.categoryActive(),
		s.Price != PriceAny,
		s.Vegetarian,
		s.Trending,
		s.Recommended,
		s.TopRated,
	} {
		if active {
			n++
		}
	}
	return n
}

// Unconstrained reports whether the spec matches every recipe.
func (s Spec) Unconstrained() bool {
	return s.Query == "" && s.ActiveCount() == 0
}

// Matches reports whether r satisfies every active constraint.
func (s Spec) Matches(r *models.Recipe) bool {
	if q := s.query(); q != "" && !matchesText(r, q) {
		return false
	}
	if s.categoryActive() && r.Category != s.Category {
		return false
	}
	if !s.Price.Contains(r.Price) {
		return false
	}
	if s.Vegetarian && !r.IsVegetarian {
		return false
	}
	if s.Trending && !r.IsTrending {
		return false
	}
	if s.Recommended && !r.IsRecommended {
		return false
	}
	if s.TopRated && r.Rating < TopRatedThreshold {
		return false
	}
	return true
}

func matchesText(r *models.Recipe, q string) bool {
	if strings.Contains(strings.ToLower(r.Title), q) ||
		strings.Contains(strings.ToLower(r.Description), q) {
		return true
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(strings.ToLower(ing), q) {
			return true
		}
	}
	return false
}

// Apply returns the recipes matching spec in their original order.
func Apply(recipes []models.Recipe, spec Spec) []models.Recipe {
	out := make([]models.Recipe, 0, len(recipes))
	for i := range recipes {
		if spec.Matches(&recipes[i]) {
			out = append(out, recipes[i])
		}
	}
	return out
}
