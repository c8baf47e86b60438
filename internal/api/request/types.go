package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"strconv"

	"github.com/mcoot/torosvacas/internal/model"
)

// MaxBodyBytes caps every JSON request body
const MaxBodyBytes = 1 << 20

// Decode reads a JSON body into v. An empty body decodes as an empty object.
func Decode(r io.Reader, v any) error {
	dec := json.NewDecoder(io.LimitReader(r, MaxBodyBytes))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// CreateGameRequest is the request body for creating a game. Fields are kept
// raw so that wrongly typed values surface as field errors.
type CreateGameRequest struct {
	User json.RawMessage `json:"user"`
	Age  json.RawMessage `json:"age"`
}

// Validate checks field types and returns the typed owner and age
func (r CreateGameRequest) Validate() (string, int, error) {
	verr := model.NewValidationError()

	user, ok, isString := rawString(r.User)
	switch {
	case !ok || (isString && user == ""):
		verr.Add("user", "The user field is required.")
	case !isString:
		verr.Add("user", "The user field must be a string.")
	}

	age, ok, isInt := rawInt(r.Age)
	switch {
	case !ok:
		verr.Add("age", "The age field is required.")
	case !isInt:
		verr.Add("age", "The age field must be an integer.")
	}

	if err := verr.Err(); err != nil {
		return "", 0, err
	}
	return user, age, nil
}

// ProposeRequest is the request body for proposing a combination
type ProposeRequest struct {
	Combination json.RawMessage `json:"combination"`
}

// Guess returns the proposed combination, or nil when it is absent or null.
// Numbers are passed through as their literal text.
func (r ProposeRequest) Guess() *string {
	if isNull(r.Combination) {
		return nil
	}
	if s, _, isString := rawString(r.Combination); isString {
		return &s
	}
	s := string(bytes.TrimSpace(r.Combination))
	return &s
}

// RegisterRequest is the request body for registering an account
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// rawString reports the value, whether it was present and whether it was a
// JSON string
func rawString(raw json.RawMessage) (string, bool, bool) {
	if isNull(raw) {
		return "", false, false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", true, false
	}
	return s, true, true
}

// rawInt accepts integral JSON numbers and numeric strings
func rawInt(raw json.RawMessage) (int, bool, bool) {
	if isNull(raw) {
		return 0, false, false
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
			return 0, true, false
		}
		return int(f), true, true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return 0, false, false
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, true, false
		}
		return n, true, true
	}

	return 0, true, false
}
