package domain

import "testing"

func TestUser_MaxRoleLevel(t *testing.T) {
	u := &User{}
	if got := u.MaxRoleLevel(); got != 0 {
		t.Fatalf("expected 0 for no roles, got %d", got)
	}

	u.Roles = []Role{{Name: RoleUser, Level: 1}, {Name: RoleManager, Level: 2}}
	if got := u.MaxRoleLevel(); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}

	u.Roles = append(u.Roles, Role{Name: RoleAdmin, Level: 3})
	if got := u.MaxRoleLevel(); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
}

func TestAuthorize_Levels(t *testing.T) {
	cases := []struct {
		name     string
		level    int
		minLevel int
		active   bool
		permit   bool
		reason   DenyReason
	}{
		{"equal level permits", 2, 2, true, true, DenyNone},
		{"higher level permits", 3, 1, true, true, DenyNone},
		{"lower level denied", 1, 3, true, false, DenyInsufficientPrivilege},
		{"no roles denied", 0, 1, true, false, DenyInsufficientPrivilege},
		{"zero requirement permits roleless", 0, 0, true, true, DenyNone},
		{"inactive denied regardless of level", 3, 1, false, false, DenyInactiveAccount},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u := &User{IsActive: tc.active}
			if tc.level > 0 {
				u.Roles = []Role{{Name: "r", Level: tc.level}}
			}
			d := Authorize(u, tc.minLevel)
			if d.Permitted != tc.permit {
				t.Fatalf("permitted = %v, want %v", d.Permitted, tc.permit)
			}
			if d.Reason != tc.reason {
				t.Fatalf("reason = %q, want %q", d.Reason, tc.reason)
			}
		})
	}
}

func TestAuthorize_InactiveFlipChangesDecision(t *testing.T) {
	u := &User{IsActive: true, Roles: []Role{{Name: RoleAdmin, Level: 3}}}
	if d := Authorize(u, 3); !d.Permitted {
		t.Fatalf("expected permit, got deny (%s)", d.Reason)
	}

	u.IsActive = false
	d := Authorize(u, 3)
	if d.Permitted {
		t.Fatalf("expected deny after deactivation")
	}
	if d.Reason != DenyInactiveAccount {
		t.Fatalf("reason = %q, want %q", d.Reason, DenyInactiveAccount)
	}
	if d.Err() != ErrAccountInactive {
		t.Fatalf("expected ErrAccountInactive, got %v", d.Err())
	}
}
