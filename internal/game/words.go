// internal/game/words.go
package game

import "math/rand"

// DefaultWords is the fixed prompt list rounds draw from.
var DefaultWords = []string{
	"apple", "banana", "car", "dog", "elephant",
	"flower", "guitar", "house", "ice cream", "jungle",
	"kite", "lion", "mountain", "notebook", "ocean",
	"pizza", "queen", "rainbow", "sun", "tree",
}

// pickWord returns a uniformly random word. The same word may repeat across
// consecutive rounds.
func pickWord(words []string) string {
	return words[rand.Intn(len(words))]
}
