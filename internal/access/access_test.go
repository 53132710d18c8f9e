package access

import "testing"

func TestResolveRole(t *testing.T) {
	cases := []struct {
		claim string
		want  Role
	}{
		{"storekeeper", RoleStorekeeper},
		{"supervisor", RoleSupervisor},
		{"", RoleSupervisor},
		{"admin", RoleSupervisor},
		{"Storekeeper", RoleSupervisor},
	}

	for _, tc := range cases {
		if got := ResolveRole(tc.claim); got != tc.want {
			t.Errorf("ResolveRole(%q) = %s, want %s", tc.claim, got, tc.want)
		}
	}
}

func TestCanMutate(t *testing.T) {
	if !(Session{Role: RoleStorekeeper}).CanMutate() {
		t.Error("storekeeper session should be allowed to mutate")
	}
	if (Session{Role: RoleSupervisor}).CanMutate() {
		t.Error("supervisor session must not be allowed to mutate")
	}
	if (Session{}).CanMutate() {
		t.Error("zero session must not be allowed to mutate")
	}
}
