package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewStore(rdb, time.Hour), mr
}

func TestStoreRoundTrip(t *testing.T) {
	s, mr := newStore(t)
	ctx := context.Background()

	id, err := s.Create(ctx, 42)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, time.Hour, mr.TTL(keyPrefix+id))

	userID, err := s.Lookup(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)

	require.NoError(t, s.Destroy(ctx, id))
	_, err = s.Lookup(ctx, id)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestStoreExpiry(t *testing.T) {
	s, mr := newStore(t)
	ctx := context.Background()

	id, err := s.Create(ctx, 1)
	require.NoError(t, err)
	mr.FastForward(2 * time.Hour)

	_, err = s.Lookup(ctx, id)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestStoreCorruptEntry(t *testing.T) {
	s, mr := newStore(t)
	require.NoError(t, mr.Set(keyPrefix+"abc", "not-a-number"))

	_, err := s.Lookup(context.Background(), "abc")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoSession)
}

func TestCodec(t *testing.T) {
	c := NewCodec("secret", time.Hour)

	value, err := c.Encode("sid-1")
	require.NoError(t, err)
	id, err := c.Decode(value)
	require.NoError(t, err)
	assert.Equal(t, "sid-1", id)

	_, err = NewCodec("other", time.Hour).Decode(value)
	assert.ErrorIs(t, err, ErrBadCookie)

	_, err = c.Decode("sid-1")
	assert.ErrorIs(t, err, ErrBadCookie)

	expired, err := NewCodec("secret", -time.Minute).Encode("sid-2")
	require.NoError(t, err)
	_, err = c.Decode(expired)
	assert.ErrorIs(t, err, ErrBadCookie)
}

func TestCodecRejectsUnsignedToken(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{ID: "sid"})
	value, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewCodec("secret", time.Hour).Decode(value)
	assert.ErrorIs(t, err, ErrBadCookie)
}

func TestManagerLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s, _ := newStore(t)
	m := NewManager(s, NewCodec("secret", time.Hour), Options{CookieName: "sid", TTL: time.Hour})

	// login
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/login", nil)
	require.NoError(t, m.Start(c, 7))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "sid", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	// authenticated request
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/me", nil)
	c.Request.AddCookie(cookies[0])
	_, userID, err := m.Current(c)
	require.NoError(t, err)
	assert.Equal(t, uint(7), userID)

	// logout
	require.NoError(t, m.End(c))
	_, _, err = m.Current(c)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestManagerWithoutCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s, _ := newStore(t)
	m := NewManager(s, NewCodec("secret", time.Hour), Options{CookieName: "sid", TTL: time.Hour})

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/me", nil)
	_, _, err := m.Current(c)
	assert.ErrorIs(t, err, ErrNoSession)

	c.Request.AddCookie(&http.Cookie{Name: "sid", Value: "forged"})
	_, _, err = m.Current(c)
	assert.ErrorIs(t, err, ErrNoSession)

	assert.NoError(t, m.End(c))
}
