// Package rating computes the aggregate star rating of a recipe from its
// reviews.
package rating

const (
	MinStars = 1
	MaxStars = 5
)

// Valid reports whether stars is an acceptable review rating.
func Valid(stars int) bool {
	return stars >= MinStars && stars <= MaxStars
}

// Mean returns the arithmetic mean of ratings, or 0 for an empty list.
func Mean(ratings []int) float64 {
	return FromRatings(ratings).Mean()
}

// Aggregate is the running state behind a recipe's rating: the sum of all
// review stars and the number of reviews.
type Aggregate struct {
	Total int64
	Count int64
}

// FromRatings builds an aggregate by scanning every rating.
func FromRatings(ratings []int) Aggregate {
	var a Aggregate
	for _, r := range ratings {
		a = a.Add(r)
	}
	return a
}

// Add returns the aggregate with one more review of the given stars.
func (a Aggregate) Add(stars int) Aggregate {
	return Aggregate{Total: a.Total + int64(stars), Count: a.Count + 1}
}

// Remove returns the aggregate without one review of the given stars.
// Removing from an empty aggregate yields the empty aggregate.
func (a Aggregate) Remove(stars int) Aggregate {
	if a.Count <= 1 {
		return Aggregate{}
	}
	return Aggregate{Total: a.Total - int64(stars), Count: a.Count - 1}
}

// Mean is Total/Count, or 0 when there are no reviews.
func (a Aggregate) Mean() float64 {
	if a.Count <= 0 {
		return 0
	}
	return float64(a.Total) / float64(a.Count)
}
