package admin

import "github.com/sonroyaalmerol/groupware/pkg/optional"

// Unlimited is the quota limit meaning "no limit".
const Unlimited int64 = -1

// Quota limits the number of objects a module may hold.
type Quota struct {
	Module optional.Field[string] `json:"module,omitzero"`
	Limit  optional.Field[int64]  `json:"limit,omitzero"`
}

func NewQuota(module string, limit int64) *Quota {
	q := &Quota{}
	q.Module.Set(module)
	q.Limit.Set(limit)
	return q
}

func (q *Quota) IsUnlimited() bool {
	limit, ok := q.Limit.Get()
	return ok && limit < 0
}

// Allows reports whether count objects fit into the quota.
func (q *Quota) Allows(count int64) bool {
	limit, ok := q.Limit.Get()
	if !ok || limit < 0 {
		return true
	}
	return count <= limit
}

func (q *Quota) MandatoryMembers(op Operation) []string {
	if op == OpChange {
		return []string{"module", "limit"}
	}
	return nil
}

func (q *Quota) memberFilled(name string) (bool, bool) {
	switch name {
	case "module":
		return filled(q.Module), true
	case "limit":
		return filled(q.Limit), true
	}
	return false, false
}

func (q *Quota) Equal(o *Quota) bool {
	if q == nil || o == nil {
		return q == o
	}
	return optional.Equal(q.Module, o.Module) && optional.Equal(q.Limit, o.Limit)
}

func (q *Quota) String() string {
	if q == nil {
		return "<nil>"
	}
	w := newDumper("Quota")
	dump(w, "module", q.Module)
	dump(w, "limit", q.Limit)
	return w.String()
}
