package contactbook

import (
	"testing"

	"github.com/mr-shifu/rsa-messenger/pkg/keystore"
	"github.com/mr-shifu/rsa-messenger/pkg/vault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactBook(t *testing.T) {
	ks := keystore.NewVaultKeystore(vault.NewInMemoryVault())

	cb, err := Load(ks)
	require.NoError(t, err)
	assert.Empty(t, cb.List())
	assert.False(t, cb.Contains("a@x"))

	require.NoError(t, cb.Add("a@x"))
	require.NoError(t, cb.Add("b@x"))
	require.NoError(t, cb.Add("a@x"))
	assert.Equal(t, []string{"a@x", "b@x"}, cb.List())
	assert.True(t, cb.Contains(" b@x "))
	assert.Equal(t, "a@x, b@x", cb.String())

	stored, err := ks.Get(KeyID)
	require.NoError(t, err)
	assert.Equal(t, "a@x, b@x", string(stored))

	reloaded, err := Load(ks)
	require.NoError(t, err)
	assert.Equal(t, cb.List(), reloaded.List())

	require.NoError(t, cb.Reset())
	assert.Empty(t, cb.List())
	reloaded, err = Load(ks)
	require.NoError(t, err)
	assert.Empty(t, reloaded.List())
}

func TestContactBook_InvalidEmail(t *testing.T) {
	cb, err := Load(keystore.NewVaultKeystore(vault.NewInMemoryVault()))
	require.NoError(t, err)
	assert.Error(t, cb.Add(""))
	assert.Error(t, cb.Add("a@x,b@x"))
}

func TestParse(t *testing.T) {
	assert.Nil(t, Parse(""))
	assert.Equal(t, []string{"a@x"}, Parse("a@x"))
	assert.Equal(t, []string{"a@x", "b@x"}, Parse("a@x, b@x,a@x , "))
}
