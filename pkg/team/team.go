package team

import "strings"

type TeamMember struct {
	Id    string
	Name  string
	Role  string
	Notes string
}

// FirstName is the part of the name before the first space; tasks refer to members by it.
func (m TeamMember) FirstName() string {
	first, _, _ := strings.Cut(m.Name, " ")
	return first
}
