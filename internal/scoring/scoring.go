// Package scoring turns a learner's answers into a score and a point award.
package scoring

import "math"

// Unanswered marks a question the learner has not answered.
const Unanswered = -1

// Question is the minimal view of a question needed for scoring.
type Question interface {
	CorrectOption() int
}

// Result is the outcome of scoring one quiz attempt.
type Result struct {
	Total        int
	CorrectCount int

	// ScorePercent is 100 * correct / total at full precision.
	ScorePercent float64

	PointsEarned int
}

// DisplayPercent returns ScorePercent rounded to the nearest integer, ties up.
func (r Result) DisplayPercent() int {
	return RoundHalfUp(r.ScorePercent)
}

// Score computes the result for answers against questions for a topic
// worth maxPoints at 100%. Unanswered, out-of-range and missing answers
// count as incorrect. An empty question set scores zero.
func Score[Q Question](questions []Q, answers []int, maxPoints int) Result {
	res := Result{Total: len(questions)}
	if len(questions) == 0 {
		return res
	}

	for i, q := range questions {
		if i >= len(answers) {
			break
		}
		a := answers[i]
		if a == Unanswered || a < 0 {
			continue
		}
		if a == q.CorrectOption() {
			res.CorrectCount++
		}
	}

	res.ScorePercent = 100 * float64(res.CorrectCount) / float64(res.Total)
	res.PointsEarned = Points(maxPoints, res.CorrectCount, res.Total)
	return res
}

// Points returns round(maxPoints * correct / total), ties up, clamped to
// [0, maxPoints]. It uses integer arithmetic so that the award is exact
// for every score percentage.
func Points(maxPoints, correct, total int) int {
	if maxPoints <= 0 || total <= 0 || correct <= 0 {
		return 0
	}
	if correct >= total {
		return maxPoints
	}
	// floor((2*p*c + t) / (2*t)) == floor(p*c/t + 0.5)
	pts := (2*maxPoints*correct + total) / (2 * total)
	return min(max(pts, 0), maxPoints)
}

// RoundHalfUp rounds x to the nearest integer, with .5 rounding up.
func RoundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
