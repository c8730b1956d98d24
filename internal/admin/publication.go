package admin

import "github.com/sonroyaalmerol/groupware/pkg/optional"

// Publication is a folder or item made reachable through a public URL.
type Publication struct {
	ID          optional.Field[int]      `json:"id,omitzero"`
	UserID      optional.Field[int]      `json:"userId,omitzero"`
	Context     optional.Field[*Context] `json:"context,omitzero"`
	EntityID    optional.Field[string]   `json:"entityId,omitzero"`
	Module      optional.Field[string]   `json:"module,omitzero"`
	Name        optional.Field[string]   `json:"name,omitzero"`
	URL         optional.Field[string]   `json:"url,omitzero"`
	Description optional.Field[string]   `json:"description,omitzero"`
}

func (p *Publication) MandatoryMembers(op Operation) []string {
	if op == OpDelete {
		return []string{"id"}
	}
	return nil
}

func (p *Publication) memberFilled(name string) (bool, bool) {
	switch name {
	case "id":
		return filled(p.ID), true
	case "entityId":
		return filled(p.EntityID), true
	case "module":
		return filled(p.Module), true
	}
	return false, false
}

func (p *Publication) Equal(o *Publication) bool {
	if p == nil || o == nil {
		return p == o
	}
	return optional.Equal(p.ID, o.ID) &&
		optional.Equal(p.UserID, o.UserID) &&
		optional.EqualFunc(p.Context, o.Context, (*Context).Equal) &&
		optional.Equal(p.EntityID, o.EntityID) &&
		optional.Equal(p.Module, o.Module) &&
		optional.Equal(p.Name, o.Name) &&
		optional.Equal(p.URL, o.URL) &&
		optional.Equal(p.Description, o.Description)
}

func (p *Publication) String() string {
	if p == nil {
		return "<nil>"
	}
	w := newDumper("Publication")
	dump(w, "id", p.ID)
	dump(w, "userId", p.UserID)
	dump(w, "context", p.Context)
	dump(w, "entityId", p.EntityID)
	dump(w, "module", p.Module)
	dump(w, "name", p.Name)
	dump(w, "url", p.URL)
	dump(w, "description", p.Description)
	return w.String()
}
