package admin

import "fmt"

// UserProperty is one configuration value visible for a user.
type UserProperty struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Scope string `json:"scope"`
}

func (p UserProperty) String() string {
	return fmt.Sprintf("%s=%s [%s]", p.Name, p.Value, p.Scope)
}
