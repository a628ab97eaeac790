package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		word string
		kind Kind
		ok   bool
	}{
		{"PRINT", Keyword, true},
		{"GOTO", Keyword, true},
		{"DEF FN", Keyword, true},
		{"CHR$", Function, true},
		{"SIN", Function, true},
		{"CHR", Identifier, false},
		{"TOTAL", Identifier, false},
	}
	for _, tt := range tests {
		kind, ok := Lookup(tt.word)
		assert.Equal(t, tt.kind, kind, tt.word)
		assert.Equal(t, tt.ok, ok, tt.word)
	}
}

func TestKeywordAvailable(t *testing.T) {
	assert.True(t, KeywordAvailable("PRINT", Dialect48K))
	assert.False(t, KeywordAvailable("PLAY", Dialect48K))
	assert.True(t, KeywordAvailable("PLAY", Dialect128K))
	assert.False(t, KeywordAvailable("PLAY", DialectInterface1))
	assert.True(t, KeywordAvailable("CAT", DialectInterface1))
	assert.False(t, KeywordAvailable("CAT", Dialect128K))

	assert.Contains(t, Keywords(Dialect128K), "SPECTRUM")
	assert.NotContains(t, Keywords(Dialect48K), "SPECTRUM")
}

func TestParseDialect(t *testing.T) {
	for in, want := range map[string]Dialect{
		"48K": Dialect48K, "128k": Dialect128K, "Interface1": DialectInterface1, "if1": DialectInterface1,
	} {
		got, ok := ParseDialect(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParseDialect("c64")
	assert.False(t, ok)
}

func TestRangeContains(t *testing.T) {
	r := Range{Start: Position{Line: 2, Column: 4}, End: Position{Line: 2, Column: 8}}
	assert.True(t, r.Contains(Position{Line: 2, Column: 4}))
	assert.True(t, r.Contains(Position{Line: 2, Column: 8}))
	assert.False(t, r.Contains(Position{Line: 2, Column: 9}))
	assert.False(t, r.Contains(Position{Line: 1, Column: 5}))
}
