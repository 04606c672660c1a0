package transport

import (
	"encoding/json"

	"github.com/taskhive/backend/domain"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TaskCreateRequest deliberately has no owner field: whatever the client
// sends for "owner" is dropped at decode time and the authenticated user is
// used instead.
type TaskCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

var taskPatchFields = map[string]struct{}{
	"name":        {},
	"completed":   {},
	"description": {},
}

var profilePatchFields = map[string]struct{}{
	"name":     {},
	"email":    {},
	"password": {},
}

// ParseTaskPatch decodes a partial task update. Any key outside the
// allow-list {name, completed, description} rejects the whole payload; no
// field is applied from a partially valid body.
func ParseTaskPatch(body []byte) (domain.TaskPatch, error) {
	fields, err := decodeFields(body, taskPatchFields)
	if err != nil {
		return domain.TaskPatch{}, err
	}

	var patch domain.TaskPatch
	if raw, ok := fields["name"]; ok {
		if err := json.Unmarshal(raw, &patch.Name); err != nil || patch.Name == nil {
			return domain.TaskPatch{}, domain.NewError(domain.ErrCodeInvalid, "name must be a string")
		}
	}
	if raw, ok := fields["description"]; ok {
		if err := json.Unmarshal(raw, &patch.Description); err != nil || patch.Description == nil {
			return domain.TaskPatch{}, domain.NewError(domain.ErrCodeInvalid, "description must be a string")
		}
	}
	if raw, ok := fields["completed"]; ok {
		if err := json.Unmarshal(raw, &patch.Completed); err != nil || patch.Completed == nil {
			return domain.TaskPatch{}, domain.NewError(domain.ErrCodeInvalid, "completed must be a boolean")
		}
	}
	return patch, nil
}

// ProfilePatch mirrors the profile allow-list {name, email, password}.
type ProfilePatch struct {
	Name     *string
	Email    *string
	Password *string
}

// ParseProfilePatch decodes a partial profile update with the same
// wholesale-rejection policy as task patches.
func ParseProfilePatch(body []byte) (ProfilePatch, error) {
	fields, err := decodeFields(body, profilePatchFields)
	if err != nil {
		return ProfilePatch{}, err
	}

	var patch ProfilePatch
	if raw, ok := fields["name"]; ok {
		if err := json.Unmarshal(raw, &patch.Name); err != nil || patch.Name == nil {
			return ProfilePatch{}, domain.NewError(domain.ErrCodeInvalid, "name must be a string")
		}
	}
	if raw, ok := fields["email"]; ok {
		if err := json.Unmarshal(raw, &patch.Email); err != nil || patch.Email == nil {
			return ProfilePatch{}, domain.NewError(domain.ErrCodeInvalid, "email must be a string")
		}
	}
	if raw, ok := fields["password"]; ok {
		if err := json.Unmarshal(raw, &patch.Password); err != nil || patch.Password == nil {
			return ProfilePatch{}, domain.NewError(domain.ErrCodeInvalid, "password must be a string")
		}
	}
	return patch, nil
}

func decodeFields(body []byte, allowed map[string]struct{}) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, domain.ErrInvalidPayload
	}
	for key := range fields {
		if _, ok := allowed[key]; !ok {
			return nil, domain.NewError(domain.ErrCodeInvalid, "invalid update field: "+key)
		}
	}
	return fields, nil
}
