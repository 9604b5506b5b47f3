package model

import "testing"

func TestTaskStatusString(t *testing.T) {
	if TaskStatusPending.String() != "Pending" {
		t.Errorf("Expected 'Pending', got '%s'", TaskStatusPending.String())
	}

	if TaskStatusFetching.String() != "Fetching" {
		t.Errorf("Expected 'Fetching', got '%s'", TaskStatusFetching.String())
	}
}

func TestTaskStatusIsActive(t *testing.T) {
	tests := []struct {
		status   TaskStatus
		expected bool
	}{
		{TaskStatusPending, false},
		{TaskStatusFetching, true},
		{TaskStatusStopped, false},
		{TaskStatusCompleted, false},
		{TaskStatusFailed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if tt.status.IsActive() != tt.expected {
				t.Errorf("IsActive() for %s = %v, expected %v",
					tt.status, tt.status.IsActive(), tt.expected)
			}
		})
	}
}

func TestTaskStatusIsFinished(t *testing.T) {
	tests := []struct {
		status   TaskStatus
		expected bool
	}{
		{TaskStatusPending, false},
		{TaskStatusFetching, false},
		{TaskStatusStopped, true},
		{TaskStatusCompleted, true},
		{TaskStatusFailed, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if tt.status.IsFinished() != tt.expected {
				t.Errorf("IsFinished() for %s = %v, expected %v",
					tt.status, tt.status.IsFinished(), tt.expected)
			}
		})
	}
}
