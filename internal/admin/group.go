package admin

import (
	"slices"

	"github.com/sonroyaalmerol/groupware/pkg/optional"
)

// Group is a named set of user ids inside a context.
type Group struct {
	ID          optional.Field[int]    `json:"id,omitzero"`
	Name        optional.Field[string] `json:"name,omitzero"`
	DisplayName optional.Field[string] `json:"displayname,omitzero"`
	Members     optional.Field[[]int]  `json:"members,omitzero"`

	Extensions Extensions `json:"-"`
}

func NewGroup(id int) *Group {
	g := &Group{}
	g.ID.Set(id)
	return g
}

func (g *Group) MandatoryMembers(op Operation) []string {
	switch op {
	case OpCreate:
		return []string{"name", "displayname"}
	case OpChange, OpDelete:
		return []string{"id"}
	}
	return nil
}

func (g *Group) memberFilled(name string) (bool, bool) {
	switch name {
	case "id":
		return filled(g.ID), true
	case "name":
		return filled(g.Name), true
	case "displayname":
		return filled(g.DisplayName), true
	case "members":
		return filled(g.Members), true
	}
	return false, false
}

// AddMember adds a user id unless it is already a member.
func (g *Group) AddMember(id int) {
	members := g.Members.Value()
	if !slices.Contains(members, id) {
		members = append(slices.Clone(members), id)
	}
	g.Members.Set(members)
}

func (g *Group) Equal(o *Group) bool {
	if g == nil || o == nil {
		return g == o
	}
	return optional.Equal(g.ID, o.ID) &&
		optional.Equal(g.Name, o.Name) &&
		optional.Equal(g.DisplayName, o.DisplayName) &&
		equalSlices(g.Members, o.Members)
}

func (g *Group) String() string {
	if g == nil {
		return "<nil>"
	}
	w := newDumper("Group")
	dump(w, "id", g.ID)
	dump(w, "name", g.Name)
	dump(w, "displayname", g.DisplayName)
	dump(w, "members", g.Members)
	if g.Extensions.Len() > 0 {
		w.write("extensions", g.Extensions.String())
	}
	return w.String()
}
