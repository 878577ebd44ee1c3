package models

import (
	"testing"
)

func TestUserToResponse(t *testing.T) {
	user := &User{
		ID:       1,
		Username: "john_doe",
		Email:    "john@example.com",
		FullName: "John Doe",
		Role:     UserRoleStudent,
	}

	response := user.ToResponse()

	if response.ID != user.ID {
		t.Errorf("ToResponse ID = %d, want %d", response.ID, user.ID)
	}
	if response.Username != user.Username {
		t.Errorf("ToResponse Username = %q, want %q", response.Username, user.Username)
	}
	if response.Email != user.Email {
		t.Errorf("ToResponse Email = %q, want %q", response.Email, user.Email)
	}
	if response.FullName != user.FullName {
		t.Errorf("ToResponse FullName = %q, want %q", response.FullName, user.FullName)
	}
	if response.Role != user.Role {
		t.Errorf("ToResponse Role = %q, want %q", response.Role, user.Role)
	}
}

func TestUserIsFaculty(t *testing.T) {
	student := &User{Role: UserRoleStudent}
	if student.IsFaculty() {
		t.Error("student should not be faculty")
	}

	faculty := &User{Role: UserRoleFaculty}
	if !faculty.IsFaculty() {
		t.Error("faculty user should be faculty")
	}
}

func TestTaskStatusValid(t *testing.T) {
	tests := []struct {
		status   TaskStatus
		expected bool
	}{
		{TaskStatusTodo, true},
		{TaskStatusDoing, true},
		{TaskStatusDone, true},
		{TaskStatus("archived"), false},
		{TaskStatus(""), false},
	}

	for _, tt := range tests {
		if got := tt.status.Valid(); got != tt.expected {
			t.Errorf("TaskStatus(%q).Valid() = %v, want %v", tt.status, got, tt.expected)
		}
	}
}

func TestEvaluationTotalScore(t *testing.T) {
	eval := &Evaluation{
		Scores: []EvaluationScore{
			{CriterionID: 1, Score: 35},
			{CriterionID: 2, Score: 25},
			{CriterionID: 3, Score: 28},
		},
	}
	if got := eval.TotalScore(); got != 88 {
		t.Errorf("TotalScore = %d, want 88", got)
	}

	empty := &Evaluation{}
	if got := empty.TotalScore(); got != 0 {
		t.Errorf("TotalScore of empty evaluation = %d, want 0", got)
	}
}
