// Package rating turns raw star votes into the aggregate stored on a submission.
package rating

import (
	"math"
	"slices"

	"github.com/ai-literacy/toolbox/internal/apperrors"
	"github.com/ai-literacy/toolbox/internal/models"
)

const (
	MinStars = 1.0
	MaxStars = 5.0
	// halfStar is the display quantization step
	halfStar = 0.5
)

// ValidateVote checks that a raw vote lies within [MinStars, MaxStars]
func ValidateVote(value float64) error {
	if math.IsNaN(value) || value < MinStars || value > MaxStars {
		return apperrors.ErrInvalidRating
	}
	return nil
}

// AddVote appends value to the aggregate votes and returns the recomputed aggregate.
// The input aggregate is never modified.
func AddVote(agg models.RatingAggregate, value float64) (models.RatingAggregate, error) {
	if err := ValidateVote(value); err != nil {
		return agg, err
	}

	votes := make([]float64, 0, len(agg.Votes)+1)
	votes = append(votes, agg.Votes...)
	votes = append(votes, value)

	return Recompute(votes), nil
}

// Recompute derives count and average from votes.
// Votes are summed in ascending order so the result does not depend on submission order.
func Recompute(votes []float64) models.RatingAggregate {
	out := models.RatingAggregate{
		Votes: append([]float64{}, votes...),
		Count: len(votes),
	}
	if out.Count == 0 {
		return out
	}

	sorted := slices.Clone(votes)
	slices.Sort(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	out.Average = Quantize(sum / float64(out.Count))

	return out
}

// Quantize rounds value to the nearest half star, ties going to the higher half star
func Quantize(value float64) float64 {
	steps := 1 / halfStar
	return math.Floor(value*steps+0.5) / steps
}

// IsConsistent reports whether count and average match what the votes produce
func IsConsistent(agg models.RatingAggregate) bool {
	want := Recompute(agg.Votes)
	return agg.Count == want.Count && agg.Average == want.Average
}
