package session

import "encoding/json"

// persistedUser is the JSON shape of the client-local identity key.
type persistedUser struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`

	// Version is the serialization format version.
	Version int `json:"version"`
}

// currentSerializationVersion is the current version of the persisted
// identity format. Increment on breaking changes.
const currentSerializationVersion = 1

func serializeUser(u User) ([]byte, error) {
	return json.Marshal(persistedUser{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Avatar:  u.Avatar,
		Version: currentSerializationVersion,
	})
}

func deserializeUser(data []byte) (User, error) {
	var p persistedUser
	if err := json.Unmarshal(data, &p); err != nil {
		return User{}, err
	}
	return User{
		ID:     p.ID,
		Name:   p.Name,
		Email:  p.Email,
		Avatar: p.Avatar,
	}, nil
}
