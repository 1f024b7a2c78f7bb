package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequireFields(t *testing.T) {
	fields := map[string]string{
		"username": "alice",
		"password": "",
	}

	err := RequireFields(fields, "username", "password")
	assert.EqualError(t, err, "password is required")

	fields["password"] = "hunter22"
	assert.NoError(t, RequireFields(fields, "username", "password"))

	// whitespace-only counts as empty
	fields["username"] = "   "
	err = RequireFields(fields, "username", "password")
	assert.EqualError(t, err, "username is required")
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		valid    bool
	}{
		{"Valid simple", "alice", true},
		{"Valid with digits and dash", "al-ice99", true},
		{"Too short", "ab", false},
		{"Too long", "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", false},
		{"Invalid characters", "alice!", false},
		{"Spaces", "al ice", false},
		{"Leading underscore", "_alice", false},
		{"Trailing hyphen", "alice-", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, ValidatePassword("short"))
	assert.NoError(t, ValidatePassword("longenough"))
	assert.Error(t, ValidatePassword(string(make([]byte, 129))))
}
