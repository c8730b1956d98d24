package admin

import "github.com/sonroyaalmerol/groupware/pkg/optional"

type Server struct {
	ID   optional.Field[int]    `json:"id,omitzero"`
	Name optional.Field[string] `json:"name,omitzero"`
}

func (s *Server) MandatoryMembers(op Operation) []string {
	switch op {
	case OpRegister:
		return []string{"name"}
	case OpDelete:
		return []string{"id"}
	}
	return nil
}

func (s *Server) memberFilled(name string) (bool, bool) {
	switch name {
	case "id":
		return filled(s.ID), true
	case "name":
		return filled(s.Name), true
	}
	return false, false
}

func (s *Server) Equal(o *Server) bool {
	if s == nil || o == nil {
		return s == o
	}
	return optional.Equal(s.ID, o.ID) && optional.Equal(s.Name, o.Name)
}

func (s *Server) String() string {
	if s == nil {
		return "<nil>"
	}
	w := newDumper("Server")
	dump(w, "id", s.ID)
	dump(w, "name", s.Name)
	return w.String()
}
