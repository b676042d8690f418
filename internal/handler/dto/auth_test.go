package dto

import (
	"testing"
	"time"

	"github.com/flightboard/flightboard/internal/model"
)

func TestToUserResponse(t *testing.T) {
	created := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		user         model.User
		wantFullName string
	}{
		{
			name: "both names",
			user: model.User{
				ID:        "user-1",
				FirstName: "Alice",
				LastName:  "Johnson",
				Email:     "alice@example.com",
				CreatedAt: created,
			},
			wantFullName: "Alice Johnson",
		},
		{
			name: "first name only",
			user: model.User{
				ID:        "user-2",
				FirstName: "Bob",
				Email:     "bob@example.com",
			},
			wantFullName: "Bob",
		},
		{
			name: "last name only",
			user: model.User{
				ID:       "user-3",
				LastName: "Smith",
				Email:    "smith@example.com",
			},
			wantFullName: "Smith",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			resp := ToUserResponse(&test.user)

			if resp.ID != test.user.ID {
				t.Errorf("expected id %s, got %s", test.user.ID, resp.ID)
			}
			if resp.FullName != test.wantFullName {
				t.Errorf("expected full name %q, got %q", test.wantFullName, resp.FullName)
			}
			if resp.Email != test.user.Email {
				t.Errorf("expected email %s, got %s", test.user.Email, resp.Email)
			}
			if !resp.CreatedAt.Equal(test.user.CreatedAt) {
				t.Errorf("expected created_at %v, got %v", test.user.CreatedAt, resp.CreatedAt)
			}
		})
	}
}
