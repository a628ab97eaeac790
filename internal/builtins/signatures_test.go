package builtins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stefdev49/vs-zx-sub002/internal/token"
)

func TestGetBuiltinSignature(t *testing.T) {
	sig := GetBuiltinSignature("CHR$")
	require.NotNil(t, sig)
	assert.Equal(t, String, sig.ReturnType)
	require.Len(t, sig.Parameters, 1)
	assert.Equal(t, Numeric, sig.Parameters[0].Type)
	assert.Equal(t, "CHR$ x", sig.Label())

	attr := GetBuiltinSignature("ATTR")
	require.NotNil(t, attr)
	assert.Equal(t, "ATTR (line,column)", attr.Label())

	assert.Nil(t, GetBuiltinSignature("PRINT"))
}

func TestEveryFunctionTokenHasASignature(t *testing.T) {
	for _, name := range token.Functions() {
		assert.NotNil(t, GetBuiltinSignature(name), name)
	}
	assert.Len(t, Names(), len(token.Functions()))
}

func TestGetKeywordDoc(t *testing.T) {
	doc, ok := GetKeywordDoc("BEEP")
	require.True(t, ok)
	assert.Equal(t, []string{"duration", "pitch"}, doc.Params)

	_, ok = GetKeywordDoc("SIN")
	assert.False(t, ok)
}
