package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linesmerrill/lostfound-api/config"
	"github.com/linesmerrill/lostfound-api/models"
)

func TestSignatureHandler(t *testing.T) {
	m := Media{
		Config: config.Config{
			CloudinaryCloudName:    "demo",
			CloudinaryAPIKey:       "key",
			CloudinaryAPISecret:    "secret",
			CloudinaryUploadPreset: "items",
		},
		Now: func() time.Time { return time.Unix(1700000000, 0) },
	}

	rr := httptest.NewRecorder()
	m.SignatureHandler(rr, httptest.NewRequest("POST", "/api/v1/media/signature", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	resp := decode[SignatureResponse](t, rr)
	assert.Equal(t, "1700000000", resp.Timestamp)
	assert.NotEmpty(t, resp.Signature)
	assert.Equal(t, "demo", resp.CloudName)
	assert.Equal(t, "items", resp.UploadPreset)
}

func TestSignatureHandler_NotConfigured(t *testing.T) {
	rr := httptest.NewRecorder()
	Media{}.SignatureHandler(rr, httptest.NewRequest("POST", "/api/v1/media/signature", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestSignatureRouteRequiresToken(t *testing.T) {
	s := newTestServer(t)

	rr := s.do("POST", "/api/v1/media/signature", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	token := s.signIn(aliceEmail, "Alice")
	rr = s.do("POST", "/api/v1/media/signature", token, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestPublicIDFromURL(t *testing.T) {
	tests := []struct {
		ref  string
		want string
		ok   bool
	}{
		{"https://res.cloudinary.com/demo/image/upload/v1712/items/wallet.jpg", "items/wallet", true},
		{"https://res.cloudinary.com/demo/image/upload/wallet.png", "wallet", true},
		{"https://res.cloudinary.com/demo/image/upload/c_fill,w_200/v3/a/b/c.webp", "a/b/c", true},
		{"https://img.example/wallet.jpg", "", false},
		{"https://res.cloudinary.com/demo/image/fetch/wallet.jpg", "", false},
		{"::not a url", "", false},
		{"https://res.cloudinary.com/someone-else/image/upload/v1712/items/victim.jpg", "", false},
		{"https://evilcloudinary.com/demo/image/upload/v1712/items/wallet.jpg", "", false},
		{"https://res.cloudinary.com/demo/image/upload/doodles/others.png", "", false},
		{"https://res.cloudinary.com/demo/image/upload/v9/doodles/keys.png", "", false},
	}
	for _, tt := range tests {
		got, ok := publicIDFromURL(tt.ref, "demo")
		assert.Equal(t, tt.ok, ok, tt.ref)
		assert.Equal(t, tt.want, got, tt.ref)
	}
}

func TestPublicIDFromURL_RequiresCloudName(t *testing.T) {
	_, ok := publicIDFromURL("https://res.cloudinary.com/demo/image/upload/v1/items/wallet.jpg", "")
	assert.False(t, ok)

	for _, c := range models.Categories() {
		_, ok := publicIDFromURL(models.FallbackDoodle(c), "lostfound")
		assert.False(t, ok, c)
	}
}

func TestNewImageRemover_Unconfigured(t *testing.T) {
	r, err := NewImageRemover(config.Config{})
	assert.NoError(t, err)
	assert.Nil(t, r)
}
