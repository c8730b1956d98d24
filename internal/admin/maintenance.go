package admin

import "github.com/sonroyaalmerol/groupware/pkg/optional"

// MaintenanceReason explains why a context was disabled.
type MaintenanceReason struct {
	ID   optional.Field[int]    `json:"id,omitzero"`
	Text optional.Field[string] `json:"text,omitzero"`
}

func NewMaintenanceReason(text string) *MaintenanceReason {
	m := &MaintenanceReason{}
	m.Text.Set(text)
	return m
}

func (m *MaintenanceReason) MandatoryMembers(op Operation) []string {
	switch op {
	case OpCreate:
		return []string{"text"}
	case OpDelete:
		return []string{"id"}
	}
	return nil
}

func (m *MaintenanceReason) memberFilled(name string) (bool, bool) {
	switch name {
	case "id":
		return filled(m.ID), true
	case "text":
		return filled(m.Text), true
	}
	return false, false
}

func (m *MaintenanceReason) Equal(o *MaintenanceReason) bool {
	if m == nil || o == nil {
		return m == o
	}
	return optional.Equal(m.ID, o.ID) && optional.Equal(m.Text, o.Text)
}

func (m *MaintenanceReason) String() string {
	if m == nil {
		return "<nil>"
	}
	w := newDumper("MaintenanceReason")
	dump(w, "id", m.ID)
	dump(w, "text", m.Text)
	return w.String()
}
