package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapabilities_Table(t *testing.T) {
	tests := []struct {
		role string
		want CapabilitySet
	}{
		{Admin, CapabilitySet{true, true, true, true, true, true, true}},
		{Coordinator, CapabilitySet{false, true, true, true, true, true, true}},
		{GroupCoordinator, CapabilitySet{false, true, true, true, true, true, false}},
		{Teacher, CapabilitySet{false, false, false, true, true, false, true}},
		{Instructor, CapabilitySet{false, false, false, false, true, false, false}},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			assert.Equal(t, tt.want, Capabilities(tt.role))
			// The table is fixed; repeated lookups agree.
			assert.Equal(t, Capabilities(tt.role), Capabilities(tt.role))
		})
	}
}

func TestCapabilities_UnknownRoleIsMostRestrictive(t *testing.T) {
	for _, role := range []string{"", "superuser", "ADMIN", "student"} {
		assert.Equal(t, CapabilitySet{}, Capabilities(role), "role %q", role)
	}
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Administrator", Label(Admin))
	assert.Equal(t, "Pedagogical Coordinator", Label(Coordinator))
	assert.Equal(t, "Teacher", Label(Teacher))
	assert.Equal(t, "Instructor", Label(Instructor))
	assert.Equal(t, "Group Coordinator", Label(GroupCoordinator))

	// Unknown roles echo the raw input.
	assert.Equal(t, "janitor", Label("janitor"))
	assert.Equal(t, "", Label(""))
}

func TestCapabilitySet_Has(t *testing.T) {
	caps := Capabilities(Teacher)
	assert.True(t, caps.Has(CapManageGrading))
	assert.True(t, caps.Has(CapViewAttendance))
	assert.False(t, caps.Has(CapManageUsers))
	assert.False(t, caps.Has(CapManageExams))
	assert.False(t, caps.Has(Capability("bogus")))
}

func TestRequiresGroup(t *testing.T) {
	assert.True(t, RequiresGroup(Instructor))
	assert.True(t, RequiresGroup(GroupCoordinator))
	assert.False(t, RequiresGroup(Admin))
	assert.False(t, RequiresGroup(Coordinator))
	assert.False(t, RequiresGroup(Teacher))
	assert.False(t, RequiresGroup("unknown"))
}

func TestValid_LegacyToggle(t *testing.T) {
	assert.True(t, Valid(Admin, false))
	assert.True(t, Valid(Instructor, false))
	assert.True(t, Valid(GroupCoordinator, false))
	assert.False(t, Valid("unknown", false))

	assert.True(t, Valid(Teacher, true))
	assert.False(t, Valid(Instructor, true))
	assert.False(t, Valid(GroupCoordinator, true))
	assert.Len(t, Assignable(true), 3)
	assert.Len(t, Assignable(false), 5)
}

func TestScreenFor_PriorityChain(t *testing.T) {
	tests := []struct {
		name                             string
		hasIdentity, hasProfile, approved bool
		role                             string
		want                             Screen
	}{
		{"no identity", false, false, false, "", ScreenAuth},
		{"identity without profile", true, false, false, Teacher, ScreenAuth},
		{"identity without profile even when approved flag set", true, false, true, Admin, ScreenAuth},
		{"unapproved teacher", true, true, false, Teacher, ScreenPending},
		{"unapproved admin stays pending", true, true, false, Admin, ScreenPending},
		{"approved admin", true, true, true, Admin, ScreenAdmin},
		{"approved teacher", true, true, true, Teacher, ScreenDashboard},
		{"approved coordinator", true, true, true, Coordinator, ScreenDashboard},
		{"approved unknown role still gets a dashboard", true, true, true, "mystery", ScreenDashboard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScreenFor(tt.hasIdentity, tt.hasProfile, tt.approved, tt.role))
		})
	}
}

func sectionIDs(sections []Section) []string {
	ids := make([]string, 0, len(sections))
	for _, s := range sections {
		ids = append(ids, s.ID)
	}
	return ids
}

func TestSectionsFor(t *testing.T) {
	admin := sectionIDs(SectionsFor(Capabilities(Admin)))
	assert.Equal(t, []string{"overview", "students", "schedule", "attendance", "grading", "exams", "messages", "users"}, admin)

	teacher := sectionIDs(SectionsFor(Capabilities(Teacher)))
	assert.Equal(t, []string{"overview", "schedule", "attendance", "grading", "exams", "messages"}, teacher)
	assert.NotContains(t, teacher, "users")

	instructor := sectionIDs(SectionsFor(Capabilities(Instructor)))
	assert.Equal(t, []string{"overview", "attendance", "messages"}, instructor)

	groupCoordinator := sectionIDs(SectionsFor(Capabilities(GroupCoordinator)))
	assert.Contains(t, groupCoordinator, "students")
	assert.NotContains(t, groupCoordinator, "users")

	// Unknown role sees nothing.
	assert.Empty(t, SectionsFor(Capabilities("unknown")))
}
