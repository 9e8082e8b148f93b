package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID accepts both numeric and string identifiers
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Product is the service's product record
type Product struct {
	ID          ID      `json:"id,omitempty"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
	Thumbnail   string  `json:"thumbnail"`
	Status      string  `json:"status,omitempty"`
}

type productList struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
}

// Credentials are posted to the login endpoint
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// User is the login response
type User struct {
	ID          ID     `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Token       string `json:"token"`
	AccessToken string `json:"accessToken"`
	Role        string `json:"role"`
}

// SessionToken returns the bearer token; newer dummyjson deployments
// name it accessToken.
func (u User) SessionToken() string {
	if u.Token != "" {
		return u.Token
	}
	return u.AccessToken
}
