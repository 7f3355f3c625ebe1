package domain

import "testing"

func TestCheckPassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"all rules satisfied", "Abcdef1!", false},
		{"longer valid password", `Str0ng":pass`, false},
		{"too short", "Ab1!xyz", true},
		{"missing digit", "Abcdefgh!", true},
		{"missing uppercase", "abcdefg1!", true},
		{"missing lowercase", "ABCDEFG1!", true},
		{"missing symbol", "Abcdefg1", true},
		{"symbol outside fixed set", "Abcdefg1~", true},
		{"empty", "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckPassword(tc.password)
			if tc.wantErr && err != ErrWeakPassword {
				t.Fatalf("expected ErrWeakPassword, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
