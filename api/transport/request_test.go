package transport

import (
	"testing"

	"github.com/taskhive/backend/domain"
)

func TestParseTaskPatch(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
		check   func(t *testing.T, patch domain.TaskPatch)
	}{
		{
			name: "all allowed fields",
			body: `{"name":"buy milk","description":"2 liters","completed":true}`,
			check: func(t *testing.T, patch domain.TaskPatch) {
				if patch.Name == nil || *patch.Name != "buy milk" {
					t.Errorf("Name = %v, want buy milk", patch.Name)
				}
				if patch.Description == nil || *patch.Description != "2 liters" {
					t.Errorf("Description = %v, want 2 liters", patch.Description)
				}
				if patch.Completed == nil || !*patch.Completed {
					t.Errorf("Completed = %v, want true", patch.Completed)
				}
			},
		},
		{
			name: "subset of fields",
			body: `{"completed":false}`,
			check: func(t *testing.T, patch domain.TaskPatch) {
				if patch.Name != nil || patch.Description != nil {
					t.Error("unset fields must stay nil")
				}
				if patch.Completed == nil || *patch.Completed {
					t.Errorf("Completed = %v, want false", patch.Completed)
				}
			},
		},
		{name: "owner is not updatable", body: `{"name":"x","owner":"someone-else"}`, wantErr: true},
		{name: "unknown field rejects everything", body: `{"name":"x","priority":3}`, wantErr: true},
		{name: "null value rejected", body: `{"name":null}`, wantErr: true},
		{name: "wrong type rejected", body: `{"completed":"yes"}`, wantErr: true},
		{name: "invalid json", body: `{"name":`, wantErr: true},
		{name: "array body", body: `["name"]`, wantErr: true},
		{
			name: "empty object",
			body: `{}`,
			check: func(t *testing.T, patch domain.TaskPatch) {
				if !patch.IsEmpty() {
					t.Error("empty body must produce an empty patch")
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			patch, err := ParseTaskPatch([]byte(tc.body))
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseTaskPatch(%s) succeeded, want error", tc.body)
				}
				if !domain.IsDomainError(err, domain.ErrCodeInvalid) {
					t.Fatalf("error code = %v, want INVALID", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTaskPatch(%s) returned error: %v", tc.body, err)
			}
			tc.check(t, patch)
		})
	}
}

func TestParseProfilePatch(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
		check   func(t *testing.T, patch ProfilePatch)
	}{
		{
			name: "all allowed fields",
			body: `{"name":"Jules","email":"jules@example.com","password":"MyPass777!"}`,
			check: func(t *testing.T, patch ProfilePatch) {
				if patch.Name == nil || *patch.Name != "Jules" {
					t.Errorf("Name = %v, want Jules", patch.Name)
				}
				if patch.Email == nil || *patch.Email != "jules@example.com" {
					t.Errorf("Email = %v, want jules@example.com", patch.Email)
				}
				if patch.Password == nil || *patch.Password != "MyPass777!" {
					t.Errorf("Password = %v, want MyPass777!", patch.Password)
				}
			},
		},
		{
			name: "subset of fields",
			body: `{"email":"new@example.com"}`,
			check: func(t *testing.T, patch ProfilePatch) {
				if patch.Name != nil || patch.Password != nil {
					t.Error("unset fields must stay nil")
				}
				if patch.Email == nil || *patch.Email != "new@example.com" {
					t.Errorf("Email = %v, want new@example.com", patch.Email)
				}
			},
		},
		{name: "unknown field rejects everything", body: `{"name":"x","role":"admin"}`, wantErr: true},
		{name: "id is not updatable", body: `{"email":"a@b.com","id":"user-2"}`, wantErr: true},
		{name: "null value rejected", body: `{"password":null}`, wantErr: true},
		{name: "wrong type rejected", body: `{"name":7}`, wantErr: true},
		{name: "invalid json", body: `{"email":`, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			patch, err := ParseProfilePatch([]byte(tc.body))
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseProfilePatch(%s) succeeded, want error", tc.body)
				}
				if !domain.IsDomainError(err, domain.ErrCodeInvalid) {
					t.Fatalf("error code = %v, want INVALID", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseProfilePatch(%s) returned error: %v", tc.body, err)
			}
			tc.check(t, patch)
		})
	}
}
