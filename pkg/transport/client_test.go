package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/mr-shifu/rsa-messenger/lib/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*Client, *test.Server) {
	t.Helper()
	srv := test.NewServer()
	ts := srv.Start()
	t.Cleanup(ts.Close)

	c, err := NewClient(ts.URL, ts.Client())
	require.NoError(t, err)
	return c, srv
}

func TestClient_Key(t *testing.T) {
	c, srv := newClient(t)
	ctx := context.Background()

	_, err := c.GetKey(ctx, "alice@x")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, c.PutKey(ctx, "alice@x", "AAAA"))
	raw, ok := srv.Key("alice@x")
	require.True(t, ok)
	assert.JSONEq(t, `{"email":"alice@x","key":"AAAA"}`, string(raw))

	k, err := c.GetKey(ctx, "alice@x")
	require.NoError(t, err)
	assert.Equal(t, &Key{Email: "alice@x", Key: "AAAA"}, k)
	assert.Equal(t, int64(3), srv.Requests())
}

func TestClient_Message(t *testing.T) {
	c, _ := newClient(t)
	ctx := context.Background()

	_, err := c.GetMessage(ctx, "bob@x")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, c.PutMessage(ctx, "bob@x", "Y2lwaGVy"))
	m, err := c.GetMessage(ctx, "bob@x")
	require.NoError(t, err)
	assert.Equal(t, "bob@x", m.Email)
	assert.Equal(t, "Y2lwaGVy", m.Content)
}

func TestClient_Errors(t *testing.T) {
	ids := make(chan string, 8)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids <- r.Header.Get(RequestIDHeader)
		switch r.URL.Path {
		case "/Key/missing@x":
			http.NotFound(w, r)
		case "/Key/garbage@x":
			_, _ = w.Write([]byte("{not json"))
		default:
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	}))
	defer ts.Close()

	c, err := NewClient(ts.URL+"/", nil)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = c.GetKey(ctx, "missing@x")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = uuid.Parse(<-ids)
	assert.NoError(t, err)

	_, err = c.GetKey(ctx, "garbage@x")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	err = c.PutKey(ctx, "x@x", "k")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.Code)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.Error(t, c.PutMessage(cancelled, "x@x", "c"))
}

func TestNewClient(t *testing.T) {
	c, err := NewClient("", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultURL+"/Key/a%20b@x", c.endpoint("Key", "a b@x"))

	_, err = NewClient("ftp://host", nil)
	assert.Error(t, err)
}
