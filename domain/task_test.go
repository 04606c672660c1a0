package domain

import "testing"

func TestTaskPatchApply(t *testing.T) {
	name := "buy milk"
	done := true

	task := &Task{Name: "old", Description: "keep me", Completed: false}
	patch := TaskPatch{Name: &name, Completed: &done}
	patch.Apply(task)

	if task.Name != "buy milk" {
		t.Errorf("Name = %q, want %q", task.Name, "buy milk")
	}
	if task.Description != "keep me" {
		t.Errorf("Description = %q, want untouched %q", task.Description, "keep me")
	}
	if !task.Completed {
		t.Error("Completed = false, want true")
	}

	if !(TaskPatch{}).IsEmpty() {
		t.Error("empty patch reported as non-empty")
	}
	if patch.IsEmpty() {
		t.Error("non-empty patch reported as empty")
	}
}
