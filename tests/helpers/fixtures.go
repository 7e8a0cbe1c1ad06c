package helpers

import (
	"encoding/json"
)

// TestAccount represents a test account fixture
type TestAccount struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Default test fixtures
var DefaultTestAccount = TestAccount{
	FirstName: "Ann",
	LastName:  "Lee",
	Email:     "ann@x.com",
	Password:  "Str0ng!Pass",
}

// CreateSignupRequest creates a signup request payload
func CreateSignupRequest(firstName, lastName, email, password string) map[string]interface{} {
	return map[string]interface{}{
		"firstName": firstName,
		"lastName":  lastName,
		"email":     email,
		"password":  password,
	}
}

// CreateLoginRequest creates a login request payload
func CreateLoginRequest(email, password string) map[string]interface{} {
	return map[string]interface{}{
		"email":    email,
		"password": password,
	}
}

// CreatePasswordChangeRequest creates a password change payload
func CreatePasswordChangeRequest(currentPassword, newPassword string) map[string]interface{} {
	return map[string]interface{}{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	}
}

// CreateTodoRequest creates a todo creation payload
func CreateTodoRequest(title string) map[string]interface{} {
	return map[string]interface{}{
		"title": title,
	}
}

// ToJSON converts a fixture to JSON string
func ToJSON(fixture interface{}) string {
	data, _ := json.Marshal(fixture)
	return string(data)
}

// FromJSON parses JSON string to map
func FromJSON(jsonStr string) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal([]byte(jsonStr), &result)
	return result
}
