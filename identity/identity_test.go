package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGate_IsInstitutional(t *testing.T) {
	g := NewGate("sastra.ac.in", "Warden@Gmail.com")

	tests := []struct {
		email string
		want  bool
	}{
		{"123456789@sastra.ac.in", true},
		{"123456789@SASTRA.AC.IN", true},
		{"faculty.name@sastra.ac.in", true},
		{"warden@gmail.com", true},
		{" WARDEN@gmail.com ", true},
		{"someone@gmail.com", false},
		{"@sastra.ac.in", false},
		{"123456789@sastra.ac.in.evil.com", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, g.IsInstitutional(tt.email))
		})
	}
}

func TestGate_IsAdministrator(t *testing.T) {
	g := NewGate("sastra.ac.in", "admin@sastra.ac.in")

	assert.True(t, g.IsAdministrator("ADMIN@sastra.ac.in"))
	assert.False(t, g.IsAdministrator("123456789@sastra.ac.in"))

	noAdmin := NewGate("sastra.ac.in", "")
	assert.False(t, noAdmin.IsAdministrator(""))
	assert.False(t, noAdmin.IsAdministrator("admin@sastra.ac.in"))
}

func TestGate_RegistrationNumber(t *testing.T) {
	g := NewGate("sastra.ac.in", "admin@sastra.ac.in")

	assert.Equal(t, "123456789", g.RegistrationNumber("123456789@sastra.ac.in"))
	assert.Equal(t, AdminRegistrationNumber, g.RegistrationNumber("admin@sastra.ac.in"))
}

func TestUserID(t *testing.T) {
	id := UserID("123456789@sastra.ac.in")

	assert.Equal(t, id, UserID(" 123456789@SASTRA.ac.in"))
	assert.NotEqual(t, id, UserID("987654321@sastra.ac.in"))
	assert.NotContains(t, id, "=")
	assert.NotContains(t, id, "/")
	assert.NotContains(t, id, "+")
	assert.Equal(t, "MTIzNDU2Nzg5QHNhc3RyYS5hYy5pbg", id)
}
