package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateUserErrors(t *testing.T) {
	tests := []struct {
		name     string
		fullName string
		email    string
		password string
		want     map[string]string
	}{
		{
			name:     "valid input",
			fullName: "Ann Lee",
			email:    "ann@x.com",
			password: "longenough1",
			want:     map[string]string{},
		},
		{
			name:     "everything missing",
			fullName: "",
			email:    "",
			password: "",
			want: map[string]string{
				"fullName": "Full name is required",
				"email":    "Invalid email format",
				"password": "Password must be at least 8 characters long",
			},
		},
		{
			name:     "whitespace name",
			fullName: "   ",
			email:    "ann@x.com",
			password: "longenough1",
			want:     map[string]string{"fullName": "Full name is required"},
		},
		{
			name:     "malformed email",
			fullName: "Ann Lee",
			email:    "not-an-email",
			password: "longenough1",
			want:     map[string]string{"email": "Invalid email format"},
		},
		{
			name:     "short password",
			fullName: "Ann Lee",
			email:    "ann@x.com",
			password: "seven77",
			want:     map[string]string{"password": "Password must be at least 8 characters long"},
		},
		{
			name:     "exactly eight characters passes",
			fullName: "Ann Lee",
			email:    "ann@x.com",
			password: "eight888",
			want:     map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CreateUserErrors(tt.fullName, tt.email, tt.password))
		})
	}
}

func TestEditUserErrors(t *testing.T) {
	tests := []struct {
		name     string
		fullName string
		password string
		want     map[string]string
	}{
		{
			name:     "password omitted is fine",
			fullName: "Ann Lee",
			password: "",
			want:     map[string]string{},
		},
		{
			name:     "supplied short password fails",
			fullName: "Ann Lee",
			password: "short",
			want:     map[string]string{"password": "Password must be at least 8 characters long"},
		},
		{
			name:     "missing name fails",
			fullName: "",
			password: "",
			want:     map[string]string{"fullName": "Full name is required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EditUserErrors(tt.fullName, tt.password))
		})
	}
}

func TestIsEmail(t *testing.T) {
	assert.True(t, IsEmail("ann@x.com"))
	assert.False(t, IsEmail(""))
	assert.False(t, IsEmail("ann@"))
	assert.False(t, IsEmail("@x.com"))
}
