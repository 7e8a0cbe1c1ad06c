package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devconnect/connect-api/internal/models"
)

func validSignup() models.SignupRequest {
	return models.SignupRequest{
		FirstName: "Ann",
		LastName:  "Lee",
		Email:     "ann@x.com",
		Password:  "Str0ng!Pass",
	}
}

func TestValidateSignup(t *testing.T) {
	t.Run("accepts a valid payload", func(t *testing.T) {
		assert.NoError(t, ValidateSignup(validSignup()))
	})

	t.Run("rejects missing first name", func(t *testing.T) {
		req := validSignup()
		req.FirstName = ""
		err := ValidateSignup(req)
		require.Error(t, err)
		assert.IsType(t, &ValidationError{}, err)
	})

	t.Run("rejects missing last name", func(t *testing.T) {
		req := validSignup()
		req.LastName = ""
		assert.Error(t, ValidateSignup(req))
	})

	t.Run("rejects short first name", func(t *testing.T) {
		req := validSignup()
		req.FirstName = "Al"
		assert.Error(t, ValidateSignup(req))
	})

	t.Run("counts name length in runes, not bytes", func(t *testing.T) {
		req := validSignup()
		req.FirstName = "安娜" // 2 runes, 6 bytes
		assert.Error(t, ValidateSignup(req))

		req.FirstName = "安娜丽"
		assert.NoError(t, ValidateSignup(req))
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		req := validSignup()
		req.Email = "not-an-email"
		assert.Error(t, ValidateSignup(req))
	})

	t.Run("rejects weak password", func(t *testing.T) {
		req := validSignup()
		req.Password = "weakpass"
		assert.Error(t, ValidateSignup(req))
	})
}

func TestValidateProfileEdit(t *testing.T) {
	t.Run("accepts allow-listed fields", func(t *testing.T) {
		err := ValidateProfileEdit(map[string]interface{}{
			"firstName": "Annabel",
			"about":     "Building things",
			"skills":    []interface{}{"go", "postgres"},
		})
		assert.NoError(t, err)
	})

	t.Run("rejects any key outside the allow-list", func(t *testing.T) {
		err := ValidateProfileEdit(map[string]interface{}{
			"firstName": "Annabel",
			"email":     "new@x.com",
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "email")
	})

	t.Run("rejects forged timestamp fields", func(t *testing.T) {
		err := ValidateProfileEdit(map[string]interface{}{
			"createdAt": "2020-01-01",
		})
		assert.Error(t, err)
	})

	t.Run("rejects empty payload", func(t *testing.T) {
		assert.Error(t, ValidateProfileEdit(map[string]interface{}{}))
	})

	t.Run("rejects more than ten skills", func(t *testing.T) {
		skills := make([]interface{}, 11)
		for i := range skills {
			skills[i] = "skill"
		}
		err := ValidateProfileEdit(map[string]interface{}{"skills": skills})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Skills count")
	})

	t.Run("rejects invalid profile picture URL", func(t *testing.T) {
		err := ValidateProfileEdit(map[string]interface{}{
			"profilePicture": "not a url",
		})
		assert.Error(t, err)
	})

	t.Run("accepts valid profile picture URL", func(t *testing.T) {
		err := ValidateProfileEdit(map[string]interface{}{
			"profilePicture": "https://example.com/avatar.png",
		})
		assert.NoError(t, err)
	})
}

func TestValidatePasswordChange(t *testing.T) {
	valid := map[string]interface{}{
		"currentPassword": "Old!Pass123",
		"newPassword":     "New!Pass456",
	}

	t.Run("accepts a valid payload", func(t *testing.T) {
		change := PasswordChange{CurrentPassword: "Old!Pass123", NewPassword: "New!Pass456"}
		assert.NoError(t, ValidatePasswordChange(valid, change))
	})

	t.Run("rejects keys outside the allow-list", func(t *testing.T) {
		fields := map[string]interface{}{
			"currentPassword": "Old!Pass123",
			"newPassword":     "New!Pass456",
			"role":            "admin",
		}
		change := PasswordChange{CurrentPassword: "Old!Pass123", NewPassword: "New!Pass456"}
		err := ValidatePasswordChange(fields, change)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "role")
	})

	t.Run("rejects missing current password", func(t *testing.T) {
		change := PasswordChange{NewPassword: "New!Pass456"}
		assert.Error(t, ValidatePasswordChange(map[string]interface{}{"newPassword": "New!Pass456"}, change))
	})

	t.Run("rejects missing new password", func(t *testing.T) {
		change := PasswordChange{CurrentPassword: "Old!Pass123"}
		assert.Error(t, ValidatePasswordChange(map[string]interface{}{"currentPassword": "Old!Pass123"}, change))
	})

	t.Run("requires the new password to be strong even when the current one is", func(t *testing.T) {
		fields := map[string]interface{}{
			"currentPassword": "Old!Pass123",
			"newPassword":     "weak",
		}
		change := PasswordChange{CurrentPassword: "Old!Pass123", NewPassword: "weak"}
		err := ValidatePasswordChange(fields, change)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "New password")
	})
}

func TestValidateTodo(t *testing.T) {
	t.Run("accepts a valid title", func(t *testing.T) {
		assert.NoError(t, ValidateTodo("Write tests"))
	})

	t.Run("rejects short title", func(t *testing.T) {
		assert.Error(t, ValidateTodo("ab"))
	})

	t.Run("rejects title over 100 chars", func(t *testing.T) {
		long := make([]byte, 101)
		for i := range long {
			long[i] = 'a'
		}
		assert.Error(t, ValidateTodo(string(long)))
	})
}

func TestValidateProfileFields(t *testing.T) {
	t.Run("rejects age under 18", func(t *testing.T) {
		err := ValidateProfileFields(map[string]interface{}{"age": float64(17)})
		assert.Error(t, err)
	})

	t.Run("accepts age 18", func(t *testing.T) {
		assert.NoError(t, ValidateProfileFields(map[string]interface{}{"age": float64(18)}))
	})

	t.Run("rejects unknown gender", func(t *testing.T) {
		err := ValidateProfileFields(map[string]interface{}{"gender": "robot"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Gender")
	})

	t.Run("accepts each gender enum value", func(t *testing.T) {
		for _, gender := range []string{"male", "female", "other"} {
			assert.NoError(t, ValidateProfileFields(map[string]interface{}{"gender": gender}))
		}
	})

	t.Run("rejects weak password in profile edit", func(t *testing.T) {
		err := ValidateProfileFields(map[string]interface{}{"password": "weak"})
		assert.Error(t, err)
	})

	t.Run("rejects out-of-range name lengths", func(t *testing.T) {
		assert.Error(t, ValidateProfileFields(map[string]interface{}{"firstName": "Al"}))
		assert.Error(t, ValidateProfileFields(map[string]interface{}{"lastName": "Al"}))
	})

	t.Run("counts name length in runes, not bytes", func(t *testing.T) {
		assert.Error(t, ValidateProfileFields(map[string]interface{}{"firstName": "安娜"}))
		assert.NoError(t, ValidateProfileFields(map[string]interface{}{"firstName": "安娜丽"}))
	})

	t.Run("rejects non-string about", func(t *testing.T) {
		err := ValidateProfileFields(map[string]interface{}{"about": float64(123)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "About")
	})

	t.Run("accepts string about", func(t *testing.T) {
		assert.NoError(t, ValidateProfileFields(map[string]interface{}{"about": "Go developer"}))
	})
}
