package utils

import (
	"testing"

	"taskhub/domain/dto"
)

func strp(s string) *string { return &s }

func TestValidateStructTaskEnums(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.PatchTaskRequest
		wantErr bool
		field   string
	}{
		{"valid status", dto.PatchTaskRequest{Status: strp("IN_PROGRESS")}, false, ""},
		{"invalid status", dto.PatchTaskRequest{Status: strp("ARCHIVED")}, true, "status"},
		{"valid priority", dto.PatchTaskRequest{Priority: strp("HIGH")}, false, ""},
		{"invalid priority", dto.PatchTaskRequest{Priority: strp("URGENT")}, true, "priority"},
		{"malformed assignee", dto.PatchTaskRequest{AssigneeID: strp("not-a-uuid")}, true, "assigneeId"},
		{"empty patch", dto.PatchTaskRequest{}, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}
			details := GetValidationErrors(err)
			if _, ok := details[tt.field]; !ok {
				t.Errorf("details = %v, want entry for %q", details, tt.field)
			}
		})
	}
}
