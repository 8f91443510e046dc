// Package userdemo holds the User/Role model and the canonical pipelines run by the
// seqflow CLI and exercised as end-to-end scenarios in tests.
package userdemo

import (
	"fmt"
	"strings"
)

// Role is a user's access level. Roles order ADMIN < USER < GUEST.
type Role int

const (
	Admin Role = iota
	Member
	Guest
)

var roleNames = [...]string{"ADMIN", "USER", "GUEST"}

func (r Role) String() string {
	if r < 0 || int(r) >= len(roleNames) {
		return fmt.Sprintf("Role(%d)", int(r))
	}
	return roleNames[r]
}

// ParseRole converts a role name, case-insensitively.
func ParseRole(name string) (Role, error) {
	for i, n := range roleNames {
		if strings.EqualFold(n, name) {
			return Role(i), nil
		}
	}
	return 0, fmt.Errorf("unknown role %q", name)
}

// User is a directory entry.
type User struct {
	ID   int64
	Name string
	Role Role
}

func (u User) String() string {
	return fmt.Sprintf("User{id=%d, name='%s', role='%s'}", u.ID, u.Name, u.Role)
}

// ByName wraps a User with a natural order by name, so Sorted(nil) works on it.
type ByName struct {
	User
}

// CompareTo orders users by name.
func (u ByName) CompareTo(other ByName) int {
	return strings.Compare(u.Name, other.Name)
}

// Directory is the five-user directory the role and id scenarios run on.
func Directory() []User {
	return []User{
		{1, "Tema", Member},
		{12, "Vasya Pupkin", Admin},
		{133, "Super cat", Guest},
		{11, "Super woman", Guest},
		{94, "Super man", Guest},
	}
}

// Sequential is the directory renumbered 1..5.
func Sequential() []User {
	return []User{
		{1, "Tema", Member},
		{2, "Vasya Pupkin", Admin},
		{3, "Super cat", Guest},
		{4, "Super woman", Guest},
		{5, "Super man", Guest},
	}
}

// Duplicates has users sharing ids.
func Duplicates() []User {
	return []User{
		{1, "User1", Member},
		{2, "User2", Admin},
		{2, "User3", Guest},
		{1, "User4", Guest},
		{5, "User5", Guest},
	}
}

// Shuffled has users User1..User5 with ids out of order.
func Shuffled() []User {
	return []User{
		{4, "User4", Member},
		{1, "User1", Admin},
		{2, "User2", Guest},
		{5, "User5", Guest},
		{3, "User3", Guest},
	}
}
