package textarea

import (
	"strings"

	"github.com/zjrosen/emacskeys/internal/cachemanager"
	"github.com/zjrosen/emacskeys/internal/emacs"
	"github.com/zjrosen/emacskeys/internal/grapheme"
)

type tokenClass int

const (
	classWord tokenClass = iota
	classSpace
	classPunct
)

func classify(cluster string) tokenClass {
	switch {
	case grapheme.IsWordChar(cluster):
		return classWord
	case grapheme.IsSpace(cluster):
		return classSpace
	default:
		return classPunct
	}
}

// tokenizeLine splits a line into word runs, whitespace runs and single
// punctuation clusters.
func tokenizeLine(line string) ([]emacs.Token, error) {
	clusters := grapheme.Split(line)
	var out []emacs.Token
	for i := 0; i < len(clusters); {
		cls := classify(clusters[i])
		j := i + 1
		if cls != classPunct {
			for j < len(clusters) && classify(clusters[j]) == cls {
				j++
			}
		}
		out = append(out, emacs.Token{Start: i, End: j, String: strings.Join(clusters[i:j], "")})
		i = j
	}
	return out, nil
}

// tokenizer caches line tokens by line text so repeated motions over
// unchanged lines skip re-scanning.
type tokenizer struct {
	cache *cachemanager.ReadThroughCache[[]emacs.Token, string]
}

var sharedTokenizer = newTokenizer(
	cachemanager.NewInMemoryCacheManager[[]emacs.Token]("tokens", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval),
)

func newTokenizer(cache cachemanager.CacheManager[[]emacs.Token]) *tokenizer {
	return &tokenizer{cache: cachemanager.NewReadThroughCache[[]emacs.Token, string](cache, tokenizeLine, false)}
}

func (t *tokenizer) line(text string) []emacs.Token {
	toks, _ := t.cache.Get(text, text, cachemanager.DefaultExpiration)
	return toks
}

// TokenAt returns the token with Start < pos.Ch <= End on pos's line. At
// column 0 the result is an empty token.
func (b *Buffer) TokenAt(pos emacs.Position) emacs.Token {
	pos = b.ClipPos(pos)
	if pos.Ch == 0 {
		return emacs.Token{}
	}
	for _, tok := range b.tokens.line(b.Line(pos.Line)) {
		if tok.Start < pos.Ch && pos.Ch <= tok.End {
			return tok
		}
	}
	return emacs.Token{Start: pos.Ch, End: pos.Ch}
}
