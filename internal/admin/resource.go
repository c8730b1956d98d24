package admin

import "github.com/sonroyaalmerol/groupware/pkg/optional"

// Resource is a bookable item such as a room or a projector.
type Resource struct {
	ID          optional.Field[int]    `json:"id,omitzero"`
	Name        optional.Field[string] `json:"name,omitzero"`
	DisplayName optional.Field[string] `json:"displayname,omitzero"`
	Email       optional.Field[string] `json:"email,omitzero"`
	Available   optional.Field[bool]   `json:"available,omitzero"`
	Description optional.Field[string] `json:"description,omitzero"`

	Extensions Extensions `json:"-"`
}

func (r *Resource) MandatoryMembers(op Operation) []string {
	switch op {
	case OpCreate:
		return []string{"name", "displayname", "email"}
	case OpChange, OpDelete:
		return []string{"id"}
	}
	return nil
}

func (r *Resource) memberFilled(name string) (bool, bool) {
	switch name {
	case "id":
		return filled(r.ID), true
	case "name":
		return filled(r.Name), true
	case "displayname":
		return filled(r.DisplayName), true
	case "email":
		return filled(r.Email), true
	}
	return false, false
}

func (r *Resource) Equal(o *Resource) bool {
	if r == nil || o == nil {
		return r == o
	}
	return optional.Equal(r.ID, o.ID) &&
		optional.Equal(r.Name, o.Name) &&
		optional.Equal(r.DisplayName, o.DisplayName) &&
		optional.Equal(r.Email, o.Email) &&
		optional.Equal(r.Available, o.Available) &&
		optional.Equal(r.Description, o.Description)
}

func (r *Resource) String() string {
	if r == nil {
		return "<nil>"
	}
	w := newDumper("Resource")
	dump(w, "id", r.ID)
	dump(w, "name", r.Name)
	dump(w, "displayname", r.DisplayName)
	dump(w, "email", r.Email)
	dump(w, "available", r.Available)
	dump(w, "description", r.Description)
	if r.Extensions.Len() > 0 {
		w.write("extensions", r.Extensions.String())
	}
	return w.String()
}
