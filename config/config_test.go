package config

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	os.Setenv("DB_URI", "mongodb://127.0.0.1:27017")
	os.Setenv("DB_NAME", "test")
	conf := New()

	assert.NotEmpty(t, conf)
	assert.Equal(t, "mongodb://127.0.0.1:27017", conf.URL)
}

func TestNewDefaults(t *testing.T) {
	os.Unsetenv("INSTITUTION_DOMAIN")
	os.Unsetenv("STORE")
	os.Unsetenv("REQUEST_TIMEOUT")
	os.Setenv("ADMIN_EMAIL", "  Admin@Sastra.ac.in ")
	defer os.Unsetenv("ADMIN_EMAIL")

	conf := New()

	assert.Equal(t, "sastra.ac.in", conf.InstitutionDomain)
	assert.Equal(t, "mongo", conf.Store)
	assert.Equal(t, "admin@sastra.ac.in", conf.AdminEmail)
	assert.Equal(t, 30*time.Second, conf.RequestTimeout)
}

func TestNewBadTimeoutFallsBack(t *testing.T) {
	os.Setenv("REQUEST_TIMEOUT", "soon")
	defer os.Unsetenv("REQUEST_TIMEOUT")

	conf := New()

	assert.Equal(t, 30*time.Second, conf.RequestTimeout)
}

func TestErrorStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	ErrorStatus("error it borked", http.StatusBadRequest, rr, errors.New("bad request"))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, `{"response": "error it borked, bad request"}`, rr.Body.String())
}

func TestSetLoggerSetsDevelopmentLogger(t *testing.T) {
	l, err := setLogger("development")
	assert.NoError(t, err)
	assert.True(t, l.Core().Enabled(1))
}

func TestSetLoggerSetsProductionLogger(t *testing.T) {
	l, err := setLogger("production")
	assert.NoError(t, err)
	assert.True(t, l.Core().Enabled(2))
}

func TestSetLoggerSetsLocalLogger(t *testing.T) {
	l, err := setLogger("local")
	assert.NoError(t, err)
	assert.True(t, l.Core().Enabled(0))
}
