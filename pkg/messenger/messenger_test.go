package messenger

import (
	"bytes"
	"context"
	"testing"

	"github.com/mr-shifu/rsa-messenger/core/pool"
	rsacore "github.com/mr-shifu/rsa-messenger/core/rsa"
	"github.com/mr-shifu/rsa-messenger/lib/test"
	"github.com/mr-shifu/rsa-messenger/pkg/keystore"
	"github.com/mr-shifu/rsa-messenger/pkg/transport"
	"github.com/mr-shifu/rsa-messenger/pkg/vault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newParty(t *testing.T, server KeyServer) *Messenger {
	t.Helper()
	fv, err := vault.NewFileVault(t.TempDir())
	require.NoError(t, err)
	m, err := New(server, keystore.NewVaultKeystore(fv), pool.NewPool(0))
	require.NoError(t, err)
	return m
}

func newServer(t *testing.T) KeyServer {
	t.Helper()
	ts := test.NewServer().Start()
	t.Cleanup(ts.Close)
	c, err := transport.NewClient(ts.URL, ts.Client())
	require.NoError(t, err)
	return c
}

func TestMessenger_Exchange(t *testing.T) {
	ctx := context.Background()
	server := newServer(t)
	alice := newParty(t, server)
	bob := newParty(t, server)

	_, err := alice.KeyGen(512)
	require.NoError(t, err)
	_, err = bob.KeyGen(512)
	require.NoError(t, err)

	// alice publishes her key under her address, bob fetches it
	require.NoError(t, alice.SendKey(ctx, "alice@x"))
	assert.Equal(t, []string{"alice@x"}, alice.Contacts())
	aliceKey, err := bob.GetKey(ctx, "alice@x")
	require.NoError(t, err)

	aliceFP, err := alice.Fingerprint("")
	require.NoError(t, err)
	assert.Equal(t, aliceFP, aliceKey.Fingerprint())
	bobView, err := bob.Fingerprint("alice@x")
	require.NoError(t, err)
	assert.Equal(t, aliceFP, bobView)

	require.NoError(t, bob.SendMsg(ctx, "alice@x", "hello alice 👋"))
	text, err := alice.GetMsg(ctx, "alice@x")
	require.NoError(t, err)
	assert.Equal(t, "hello alice 👋", text)

	// bob never sent his key for alice@x, so the message is not his to read
	_, err = bob.GetMsg(ctx, "alice@x")
	assert.ErrorIs(t, err, ErrUnknownContact)
}

func TestMessenger_Errors(t *testing.T) {
	ctx := context.Background()
	server := newServer(t)
	p := newParty(t, server)

	assert.ErrorIs(t, p.SendKey(ctx, "me@x"), ErrNoLocalKey)
	_, err := p.Fingerprint("")
	assert.ErrorIs(t, err, ErrNoLocalKey)

	assert.ErrorIs(t, p.SendMsg(ctx, "nobody@x", "hi"), ErrNoContactKey)
	_, err = p.Fingerprint("nobody@x")
	assert.ErrorIs(t, err, ErrNoContactKey)

	_, err = p.GetKey(ctx, "nobody@x")
	assert.ErrorIs(t, err, transport.ErrNotFound)

	_, err = p.KeyGen(512)
	require.NoError(t, err)
	require.NoError(t, p.SendKey(ctx, "me@x"))
	_, err = p.GetMsg(ctx, "me@x")
	assert.ErrorIs(t, err, transport.ErrNotFound)

	_, err = p.GetMsg(ctx, "stranger@x")
	assert.ErrorIs(t, err, ErrUnknownContact)

	// a long message does not fit a 512 bit modulus
	_, err = p.GetKey(ctx, "me@x")
	require.NoError(t, err)
	long := string(bytes.Repeat([]byte("x"), 128))
	assert.ErrorIs(t, p.SendMsg(ctx, "me@x", long), rsacore.ErrEncryptionRange)
}

func TestMessenger_KeyGenResetsContacts(t *testing.T) {
	ctx := context.Background()
	p := newParty(t, newServer(t))

	_, err := p.KeyGen(512)
	require.NoError(t, err)
	require.NoError(t, p.SendKey(ctx, "a@x"))
	require.NoError(t, p.SendKey(ctx, "b@x"))
	assert.Equal(t, []string{"a@x", "b@x"}, p.Contacts())

	_, err = p.KeyGen(512)
	require.NoError(t, err)
	assert.Empty(t, p.Contacts())
}

func TestMessenger_BackupRestore(t *testing.T) {
	ctx := context.Background()
	server := newServer(t)
	src := newParty(t, server)

	_, err := src.KeyGen(512)
	require.NoError(t, err)
	require.NoError(t, src.SendKey(ctx, "me@x"))
	fp, err := src.Fingerprint("")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, src.Backup(&buf))

	dst := newParty(t, server)
	require.NoError(t, dst.Restore(&buf))
	restored, err := dst.Fingerprint("")
	require.NoError(t, err)
	assert.Equal(t, fp, restored)
	assert.Equal(t, []string{"me@x"}, dst.Contacts())

	// the restored pair reads messages sent to the original key
	sender := newParty(t, server)
	_, err = sender.GetKey(ctx, "me@x")
	require.NoError(t, err)
	require.NoError(t, sender.SendMsg(ctx, "me@x", "still works"))
	text, err := dst.GetMsg(ctx, "me@x")
	require.NoError(t, err)
	assert.Equal(t, "still works", text)
}

func TestMessenger_ReservedEmails(t *testing.T) {
	ctx := context.Background()
	server := newServer(t)

	fv, err := vault.NewFileVault(t.TempDir())
	require.NoError(t, err)
	store := keystore.NewVaultKeystore(fv)
	alice, err := New(server, store, pool.NewPool(0))
	require.NoError(t, err)
	bob := newParty(t, server)

	_, err = alice.KeyGen(512)
	require.NoError(t, err)
	require.NoError(t, alice.SendKey(ctx, "bob@x"))

	// bob publishes under a name that matches a local keystore id
	_, err = bob.KeyGen(512)
	require.NoError(t, err)
	for _, email := range []string{"contacts", "public", "private"} {
		require.NoError(t, bob.SendKey(ctx, email))

		_, err = alice.GetKey(ctx, email)
		assert.ErrorIs(t, err, ErrReservedEmail, email)
		assert.ErrorIs(t, alice.SendMsg(ctx, email, "hi"), ErrReservedEmail, email)
		_, err = alice.Fingerprint(email)
		assert.ErrorIs(t, err, ErrReservedEmail, email)
	}

	reloaded, err := New(server, store, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"bob@x"}, reloaded.Contacts())
	own, err := alice.Fingerprint("")
	require.NoError(t, err)
	fp, err := reloaded.Fingerprint("")
	require.NoError(t, err)
	assert.Equal(t, own, fp)
}
