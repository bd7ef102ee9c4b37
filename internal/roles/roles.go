// Package roles holds the role policy table: the closed set of user roles,
// the fixed capability set each role carries, and the screen/section routing
// derived from them. Everything here is pure lookup with no state.
package roles

// Role identifiers. The closed enumeration; anything else is treated as the
// most-restrictive role.
const (
	Admin            = "admin"
	Coordinator      = "coordinator"
	Teacher          = "teacher"
	Instructor       = "instructor"
	GroupCoordinator = "group_coordinator"
)

// CapabilitySet is the fixed set of booleans describing what a role may do.
type CapabilitySet struct {
	ManageUsers    bool `json:"manage_users"`
	ManageStudents bool `json:"manage_students"`
	ManageSchedule bool `json:"manage_schedule"`
	ManageGrading  bool `json:"manage_grading"`
	ViewAttendance bool `json:"view_attendance"`
	ManageExams    bool `json:"manage_exams"`
	ViewAllGroups  bool `json:"view_all_groups"`
}

// Capability names a single entry of the set, for middleware checks.
type Capability string

const (
	CapManageUsers    Capability = "manage_users"
	CapManageStudents Capability = "manage_students"
	CapManageSchedule Capability = "manage_schedule"
	CapManageGrading  Capability = "manage_grading"
	CapViewAttendance Capability = "view_attendance"
	CapManageExams    Capability = "manage_exams"
	CapViewAllGroups  Capability = "view_all_groups"
)

// Has reports whether the set grants the named capability. Unknown
// capability names are never granted.
func (s CapabilitySet) Has(c Capability) bool {
	switch c {
	case CapManageUsers:
		return s.ManageUsers
	case CapManageStudents:
		return s.ManageStudents
	case CapManageSchedule:
		return s.ManageSchedule
	case CapManageGrading:
		return s.ManageGrading
	case CapViewAttendance:
		return s.ViewAttendance
	case CapManageExams:
		return s.ManageExams
	case CapViewAllGroups:
		return s.ViewAllGroups
	}
	return false
}

// CanViewSchedule reports whether the role may see the timetable at all,
// which is broader than being allowed to edit it.
func (s CapabilitySet) CanViewSchedule() bool {
	return s.ManageSchedule || s.ManageGrading
}

// CanViewExams reports whether the role may see the exam calendar.
func (s CapabilitySet) CanViewExams() bool {
	return s.ManageExams || s.ManageGrading
}

// Capabilities returns the fixed capability set for a role. Unknown roles
// get the zero (most restrictive) set.
func Capabilities(role string) CapabilitySet {
	switch role {
	case Admin:
		return CapabilitySet{
			ManageUsers:    true,
			ManageStudents: true,
			ManageSchedule: true,
			ManageGrading:  true,
			ViewAttendance: true,
			ManageExams:    true,
			ViewAllGroups:  true,
		}
	case Coordinator:
		return CapabilitySet{
			ManageStudents: true,
			ManageSchedule: true,
			ManageGrading:  true,
			ViewAttendance: true,
			ManageExams:    true,
			ViewAllGroups:  true,
		}
	case GroupCoordinator:
		return CapabilitySet{
			ManageStudents: true,
			ManageSchedule: true,
			ManageGrading:  true,
			ViewAttendance: true,
			ManageExams:    true,
		}
	case Teacher:
		return CapabilitySet{
			ManageGrading:  true,
			ViewAttendance: true,
			ViewAllGroups:  true,
		}
	case Instructor:
		return CapabilitySet{
			ViewAttendance: true,
		}
	}
	return CapabilitySet{}
}

// Label returns the display label for a role. Unknown roles echo the raw
// input so a bad value degrades visibly instead of crashing.
func Label(role string) string {
	switch role {
	case Admin:
		return "Administrator"
	case Coordinator:
		return "Pedagogical Coordinator"
	case Teacher:
		return "Teacher"
	case Instructor:
		return "Instructor"
	case GroupCoordinator:
		return "Group Coordinator"
	}
	return role
}

// RequiresGroup reports whether the role is scoped to a single group and
// therefore must carry a group assignment.
func RequiresGroup(role string) bool {
	return role == Instructor || role == GroupCoordinator
}

// Assignable returns the roles an administrator may assign. With legacy true
// only the original three-role table is available.
func Assignable(legacy bool) []string {
	if legacy {
		return []string{Admin, Coordinator, Teacher}
	}
	return []string{Admin, Coordinator, Teacher, Instructor, GroupCoordinator}
}

// Valid reports whether role is a member of the assignable set.
func Valid(role string, legacy bool) bool {
	for _, r := range Assignable(legacy) {
		if r == role {
			return true
		}
	}
	return false
}
