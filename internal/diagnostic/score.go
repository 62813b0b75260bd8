// Package diagnostic turns an ordered set of yes/no answers into a score, a
// tier and a small set of templated insights. Every function here is pure.
package diagnostic

import (
	"fmt"
	"math"

	"nnx1/internal/model"
)

const (
	MinScore = 0
	MaxScore = 100
)

// CountAnswers returns the number of Yes and No answers.
func CountAnswers(answers []model.Answer) (yes, no int) {
	for _, a := range answers {
		if a.IsYes() {
			yes++
		} else {
			no++
		}
	}
	return yes, no
}

// ComputeScore returns round(100 * yes / len(answers)).
func ComputeScore(answers []model.Answer) (int, error) {
	if len(answers) == 0 {
		return 0, fmt.Errorf("%w: no answers to score", ErrInvalidInput)
	}
	yes, _ := CountAnswers(answers)
	return int(math.Round(float64(yes) * MaxScore / float64(len(answers)))), nil
}
