package domain

import "testing"

func TestParseIssueType(t *testing.T) {
	valid := []string{
		"Service request",
		"Incident report",
		"Bug",
		"Account and Access",
	}
	for _, value := range valid {
		parsed, ok := ParseIssueType(value)
		if !ok {
			t.Errorf("ParseIssueType(%q) rejected a valid type", value)
		}
		if string(parsed) != value {
			t.Errorf("ParseIssueType(%q) = %q, wire value must round-trip", value, parsed)
		}
	}

	invalid := []string{"", "bug", "BUG", "Service Request", "Feature", "incident report"}
	for _, value := range invalid {
		if _, ok := ParseIssueType(value); ok {
			t.Errorf("ParseIssueType(%q) accepted an invalid type", value)
		}
	}
}

func TestRoleHasAtLeast(t *testing.T) {
	if !RoleAdmin.HasAtLeast(RoleUser) {
		t.Error("admin must satisfy a user-level requirement")
	}
	if !RoleAdmin.HasAtLeast(RoleAdmin) {
		t.Error("admin must satisfy an admin-level requirement")
	}
	if !RoleUser.HasAtLeast(RoleUser) {
		t.Error("user must satisfy a user-level requirement")
	}
	if RoleUser.HasAtLeast(RoleAdmin) {
		t.Error("user must not satisfy an admin-level requirement")
	}
}

func TestRoleFromAdminFlag(t *testing.T) {
	if RoleFromAdminFlag(true) != RoleAdmin {
		t.Error("admin flag must map to RoleAdmin")
	}
	if RoleFromAdminFlag(false) != RoleUser {
		t.Error("cleared flag must map to RoleUser")
	}
}
