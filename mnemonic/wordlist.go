package mnemonic

import (
	"fmt"

	"github.com/tyler-smith/go-bip39/wordlists"
)

// WordlistSize is the number of entries every BIP39 word table carries.
const WordlistSize = 2048

// Wordlist is an ordered 2048-entry word table with constant-time index
// access and reverse lookup by word text.
type Wordlist struct {
	words []string
	index map[string]int
}

// Language tables. The raw word lists come from the go-bip39 reference
// tables.
var (
	English            = mustWordlist(wordlists.English)
	ChineseSimplified  = mustWordlist(wordlists.ChineseSimplified)
	ChineseTraditional = mustWordlist(wordlists.ChineseTraditional)
)

// NewWordlist wraps an ordered word table, rejecting tables that do not
// have exactly 2048 entries.
func NewWordlist(words []string) (*Wordlist, error) {
	if len(words) != WordlistSize {
		return nil, fmt.Errorf("%w: %d entries", ErrInvalidWordlist, len(words))
	}
	index := make(map[string]int, WordlistSize)
	for i, w := range words {
		index[w] = i
	}
	return &Wordlist{words: words, index: index}, nil
}

func mustWordlist(words []string) *Wordlist {
	w, err := NewWordlist(words)
	if err != nil {
		panic(err)
	}
	return w
}

// Word returns the entry at index i.
func (w *Wordlist) Word(i int) string {
	return w.words[i]
}

// Index returns the position of word in the table.
func (w *Wordlist) Index(word string) (int, error) {
	if i, ok := w.index[word]; ok {
		return i, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidWord, word)
}
