package main

import (
	"fmt"
	"math/rand"
	"slices"
)

// Question is one arithmetic problem posed to both players of a round.
// Options holds the correct answer plus three distractors, all distinct
// and within [0,100], in random order.
type Question struct {
	Text    string `json:"text"`
	Answer  int    `json:"-"`
	Options []int  `json:"options"`
}

// randomInt returns a uniform random int in [min, max].
func randomInt(min, max int) int {
	return min + rand.Intn(max-min+1)
}

// newQuestion generates a problem whose result always lies in [0,100].
func newQuestion() Question {
	var a, b, answer int
	var op string

	switch rand.Intn(3) {
	case 0:
		op = "+"
		a = randomInt(0, 100)
		b = randomInt(0, 100-a)
		answer = a + b
	case 1:
		op = "-"
		a = randomInt(0, 100)
		b = randomInt(0, a)
		answer = a - b
	default:
		op = "×"
		a = randomInt(0, 12)
		maxB := 12
		if a > 0 && 100/a < 12 {
			maxB = 100 / a
		}
		b = randomInt(0, maxB)
		answer = a * b
	}

	options := []int{answer}
	// Perturb the answer until three distinct distractors exist. With a delta
	// range of ±10 there are always at least ten in-range candidates, so this
	// terminates with probability 1; a hardened variant would bound the retries.
	for len(options) < 4 {
		cand := answer + randomInt(-10, 10)
		if cand < 0 || cand > 100 {
			continue
		}
		if slices.Contains(options, cand) {
			continue
		}
		options = append(options, cand)
	}
	rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return Question{
		Text:    fmt.Sprintf("%d %s %d = ?", a, op, b),
		Answer:  answer,
		Options: options,
	}
}
