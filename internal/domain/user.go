package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// UserID identifies a user. The remote store may hand out numeric or string ids,
// so both JSON forms are accepted.
type UserID string

func (id UserID) String() string { return string(id) }

func (id UserID) IsZero() bool { return id == "" }

func (id UserID) numeric() bool {
	if id == "" {
		return false
	}
	n, err := strconv.ParseInt(string(id), 10, 64)
	return err == nil && strconv.FormatInt(n, 10) == string(id)
}

// MarshalJSON writes canonical integer ids as JSON numbers and everything else as strings.
func (id UserID) MarshalJSON() ([]byte, error) {
	if id.numeric() {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id *UserID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = UserID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("user id: expected number or string, got %s", data)
	}
	*id = UserID(n.String())
	return nil
}

type User struct {
	ID       UserID `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserDraft is a user without an id: the body of create and update calls.
type UserDraft struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (d UserDraft) Complete() bool {
	return d.Username != "" && d.Email != ""
}

// Draft strips the id.
func (u User) Draft() UserDraft {
	return UserDraft{Username: u.Username, Email: u.Email}
}

// Apply merges the draft fields into u.
func (u User) Apply(d UserDraft) User {
	u.Username = d.Username
	u.Email = d.Email
	return u
}
