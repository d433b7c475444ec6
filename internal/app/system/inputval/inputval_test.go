package inputval

import (
	"testing"
	"time"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"user@example.com", true},
		{"user.name+tag@example.com", true},
		{"user@subdomain.example.co.uk", true},

		{"", false},
		{"   ", false},
		{" user@example.com", false},
		{"user", false},
		{"user@", false},
		{"@example.com", false},
		{"User Name <user@example.com>", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			got := IsValidEmail(tt.email)
			if got != tt.want {
				t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestIsValidObjectID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"507f1f77bcf86cd799439011", true},
		{"  507f1f77bcf86cd799439011  ", true},
		{"", false},
		{"507f1f77bcf86cd79943901", false},
		{"507f1f77bcf86cd79943901g", false},
		{"not-a-valid-id", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got := IsValidObjectID(tt.id)
			if got != tt.want {
				t.Errorf("IsValidObjectID(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2026-03-14")
	if err != nil {
		t.Fatalf("ParseDate(date) failed: %v", err)
	}
	if !got.Equal(time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("ParseDate(date) = %v", got)
	}

	got, err = ParseDate("2026-03-14T09:30:00-05:00")
	if err != nil {
		t.Fatalf("ParseDate(rfc3339) failed: %v", err)
	}
	if !got.Equal(time.Date(2026, 3, 14, 14, 30, 0, 0, time.UTC)) {
		t.Errorf("ParseDate(rfc3339) = %v", got)
	}

	if _, err := ParseDate("14/03/2026"); err == nil {
		t.Error("expected error for unsupported layout")
	}
}

func TestValidate(t *testing.T) {
	type input struct {
		Name     string `validate:"required,max=10" label:"Full name"`
		Email    string `validate:"required,email" label:"Email address"`
		Assignee string `validate:"omitempty,objectid" label:"assignedTo"`
		Priority string `validate:"omitempty,priority" label:"Priority"`
		Status   string `validate:"omitempty,taskstatus" label:"Status"`
	}

	tests := []struct {
		name       string
		input      input
		wantErrors bool
		wantFirst  string
	}{
		{
			name:  "valid input",
			input: input{Name: "Jane", Email: "jane@example.com", Priority: "High", Status: "In Progress"},
		},
		{
			name:       "missing name",
			input:      input{Email: "jane@example.com"},
			wantErrors: true,
			wantFirst:  "Full name is required.",
		},
		{
			name:       "name too long",
			input:      input{Name: "VeryLongNameThatExceedsLimit", Email: "jane@example.com"},
			wantErrors: true,
			wantFirst:  "Full name must be at most 10 characters.",
		},
		{
			name:       "invalid email",
			input:      input{Name: "Jane", Email: "not-an-email"},
			wantErrors: true,
			wantFirst:  "A valid email address is required.",
		},
		{
			name:       "invalid object id",
			input:      input{Name: "Jane", Email: "jane@example.com", Assignee: "123"},
			wantErrors: true,
			wantFirst:  "Invalid assignedTo ID",
		},
		{
			name:       "invalid priority",
			input:      input{Name: "Jane", Email: "jane@example.com", Priority: "Urgent"},
			wantErrors: true,
			wantFirst:  "Priority must be one of: High, Medium, Low.",
		},
		{
			name:       "invalid status",
			input:      input{Name: "Jane", Email: "jane@example.com", Status: "Done"},
			wantErrors: true,
			wantFirst:  "Status must be one of: To-Do, In Progress, Completed.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(tt.input)
			if result.HasErrors() != tt.wantErrors {
				t.Fatalf("HasErrors = %v, want %v (%s)", result.HasErrors(), tt.wantErrors, result.All())
			}
			if tt.wantErrors && result.First() != tt.wantFirst {
				t.Errorf("First() = %q, want %q", result.First(), tt.wantFirst)
			}
		})
	}
}

func TestResult_All(t *testing.T) {
	r := &Result{Errors: []FieldError{{Message: "Error 1"}, {Message: "Error 2"}}}
	if got := r.All(); got != "Error 1; Error 2" {
		t.Errorf("All() = %q", got)
	}
	if got := (&Result{}).First(); got != "" {
		t.Errorf("First() on empty = %q", got)
	}
}
