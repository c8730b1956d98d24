package admin

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

var ErrMalformedCredentials = errors.New("malformed credentials")

// Credentials authenticate an administrative caller.
type Credentials struct {
	Login        string `json:"login"`
	Password     string `json:"password"`
	PasswordMech string `json:"passwordMech,omitempty"`
}

// ParseBasicAuth reads credentials from an HTTP Basic authorization header
// value.
func ParseBasicAuth(header string) (*Credentials, error) {
	if header == "" {
		return nil, fmt.Errorf("%w: empty header", ErrMalformedCredentials)
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "basic" {
		return nil, fmt.Errorf("%w: not basic", ErrMalformedCredentials)
	}
	dec, err := base64.StdEncoding.DecodeString(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCredentials, err)
	}
	login, password, ok := strings.Cut(string(dec), ":")
	if !ok || login == "" {
		return nil, fmt.Errorf("%w: missing login", ErrMalformedCredentials)
	}
	return &Credentials{Login: login, Password: password}, nil
}

func (c *Credentials) String() string {
	if c == nil {
		return "<nil>"
	}
	return fmt.Sprintf("Credentials{login=%s password=***}", c.Login)
}
