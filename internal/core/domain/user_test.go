package domain

import "testing"

func TestUser_HasRole(t *testing.T) {
	u := &User{Roles: []Role{{ID: 2, Name: RoleClient}, {ID: 3, Name: RoleFreelancer}}}

	if !u.HasRole("CLIENT") || !u.HasRole("client") || !u.HasRole("Client") {
		t.Fatalf("expected case-insensitive match for CLIENT")
	}
	if u.HasRole(RoleAdmin) {
		t.Fatalf("did not expect ADMIN")
	}
}

func TestUser_HasRole_NilSafe(t *testing.T) {
	var u *User
	if u.HasRole(RoleClient) {
		t.Fatalf("nil user must have no roles")
	}

	empty := &User{}
	if empty.HasRole(RoleClient) {
		t.Fatalf("user without roles must match nothing")
	}
}

func TestUser_Type(t *testing.T) {
	tests := []struct {
		name  string
		roles []string
		want  UserType
	}{
		{"freelancer", []string{RoleFreelancer}, UserTypeFreelancer},
		{"client", []string{RoleClient}, UserTypeClient},
		{"admin buckets as client", []string{RoleAdmin}, UserTypeClient},
		{"freelancer precedence over client", []string{RoleClient, RoleFreelancer}, UserTypeFreelancer},
		{"freelancer precedence over admin", []string{RoleAdmin, RoleFreelancer}, UserTypeFreelancer},
		{"no roles", nil, UserTypeNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			u := &User{}
			for i, name := range tc.roles {
				u.Roles = append(u.Roles, Role{ID: int64(i + 1), Name: name})
			}
			if got := u.Type(); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestUser_Type_NilUser(t *testing.T) {
	var u *User
	if got := u.Type(); got != UserTypeNone {
		t.Fatalf("expected empty type for nil user, got %q", got)
	}
}

func TestUser_Clone_Independent(t *testing.T) {
	u := &User{ID: 1, Email: "a@b.c", Roles: []Role{{ID: 2, Name: RoleClient}}}
	c := u.Clone()

	c.Roles[0].Name = RoleAdmin
	c.Email = "x@y.z"

	if u.Roles[0].Name != RoleClient || u.Email != "a@b.c" {
		t.Fatalf("clone mutation leaked into original: %+v", u)
	}

	var nilUser *User
	if nilUser.Clone() != nil {
		t.Fatalf("clone of nil must be nil")
	}
}
