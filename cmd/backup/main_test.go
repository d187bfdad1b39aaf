package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToUTF8_DejaPasarUTF8(t *testing.T) {
	in := []byte(`{"products":[{"name":"Azúcar"}]}`)
	out, err := toUTF8(in)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestToUTF8_TranscodificaLatin1(t *testing.T) {
	// "Azúcar" con ú = 0xFA en ISO-8859-1
	in := []byte{'A', 'z', 0xFA, 'c', 'a', 'r'}
	out, err := toUTF8(in)
	require.NoError(t, err)
	assert.Equal(t, "Azúcar", string(out))
}
