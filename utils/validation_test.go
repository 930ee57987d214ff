package utils_test

import (
	"testing"

	"github.com/charan23k2004/Reminder-Agent/utils"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{
			name:  "Valid email should pass validation",
			email: "user@example.com",
			want:  true,
		},
		{
			name:  "Valid email with subdomain should pass validation",
			email: "user@subdomain.example.com",
			want:  true,
		},
		{
			name:  "Valid email with plus addressing should pass validation",
			email: "user+tag@example.com",
			want:  true,
		},
		{
			name:  "Email missing @ symbol should fail validation",
			email: "userexample.com",
			want:  false,
		},
		{
			name:  "Email missing domain should fail validation",
			email: "user@",
			want:  false,
		},
		{
			name:  "Email with spaces should fail validation",
			email: "user name@example.com",
			want:  false,
		},
		{
			name:  "Empty email should fail validation",
			email: "",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := utils.ValidateEmail(tt.email)
			if (err == nil) != tt.want {
				t.Errorf("ValidateEmail() error = %v, wantErr = %v", err, !tt.want)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
		errMsg   string
	}{
		{
			name:     "Valid password should pass validation",
			password: "SecurePass123",
			wantErr:  false,
		},
		{
			name:     "Password too short should fail validation",
			password: "Abc1",
			wantErr:  true,
			errMsg:   "password must be at least 8 characters long",
		},
		{
			name:     "Password without uppercase should fail validation",
			password: "securepass123",
			wantErr:  true,
			errMsg:   "password must contain at least one uppercase letter",
		},
		{
			name:     "Password without lowercase should fail validation",
			password: "SECUREPASS123",
			wantErr:  true,
			errMsg:   "password must contain at least one lowercase letter",
		},
		{
			name:     "Password without digits should fail validation",
			password: "SecurePassword",
			wantErr:  true,
			errMsg:   "password must contain at least one digit",
		},
		{
			name:     "Empty password should fail validation",
			password: "",
			wantErr:  true,
			errMsg:   "password must be at least 8 characters long",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := utils.ValidatePassword(tt.password)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePassword() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && err.Error() != tt.errMsg {
				t.Errorf("ValidatePassword() error message = %v, want %v", err.Error(), tt.errMsg)
			}
		})
	}
}

func TestValidateTitle(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		wantErr bool
		errMsg  string
	}{
		{
			name:    "Valid title should pass validation",
			title:   "Take medicine at noon",
			wantErr: false,
		},
		{
			name:    "Empty title should fail validation",
			title:   "",
			wantErr: true,
			errMsg:  "title must be between 1 and 255 characters",
		},
		{
			name:    "Title with HTML tags should fail validation",
			title:   "Reminder <script>alert('test')</script>",
			wantErr: true,
			errMsg:  "title contains invalid characters",
		},
		{
			name:    "Title with quotes should fail validation",
			title:   "Reminder with \"quotes\"",
			wantErr: true,
			errMsg:  "title contains invalid characters",
		},
		{
			name:    "Very long title should fail validation",
			title:   string(make([]byte, 256)),
			wantErr: true,
			errMsg:  "title must be between 1 and 255 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := utils.ValidateTitle(tt.title)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTitle() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && err.Error() != tt.errMsg {
				t.Errorf("ValidateTitle() error message = %v, want %v", err.Error(), tt.errMsg)
			}
		})
	}
}

func TestValidateRecurrence(t *testing.T) {
	tests := []struct {
		name       string
		recurrence string
		wantErr    bool
	}{
		{
			name:       "Empty recurrence should pass validation",
			recurrence: "",
			wantErr:    false,
		},
		{
			name:       "Daily recurrence should pass validation",
			recurrence: "daily",
			wantErr:    false,
		},
		{
			name:       "Weekly recurrence should pass validation",
			recurrence: "weekly",
			wantErr:    false,
		},
		{
			name:       "Monthly recurrence should pass validation",
			recurrence: "monthly",
			wantErr:    false,
		},
		{
			name:       "Unknown recurrence should fail validation",
			recurrence: "hourly",
			wantErr:    true,
		},
		{
			name:       "Capitalized recurrence should fail validation",
			recurrence: "Daily",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := utils.ValidateRecurrence(tt.recurrence)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRecurrence() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
