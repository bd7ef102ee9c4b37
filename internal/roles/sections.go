package roles

// Section is one entry of the dashboard menu.
type Section struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// The fixed, ordered menu. Each section names the predicate that must hold
// on the caller's capability set for it to be visible.
var sectionTable = []struct {
	section Section
	visible func(CapabilitySet) bool
}{
	{Section{"overview", "Overview"}, func(s CapabilitySet) bool { return s.ViewAttendance }},
	{Section{"students", "Student Management"}, func(s CapabilitySet) bool { return s.ManageStudents }},
	{Section{"schedule", "Schedule"}, CapabilitySet.CanViewSchedule},
	{Section{"attendance", "Attendance"}, func(s CapabilitySet) bool { return s.ViewAttendance }},
	{Section{"grading", "Grading"}, func(s CapabilitySet) bool { return s.ManageGrading }},
	{Section{"exams", "Exam Calendar"}, CapabilitySet.CanViewExams},
	{Section{"messages", "Messages"}, func(s CapabilitySet) bool { return s.ViewAttendance }},
	{Section{"users", "User Administration"}, func(s CapabilitySet) bool { return s.ManageUsers }},
}

// SectionsFor filters the fixed menu down to the sections visible to the
// given capability set, preserving order. A zero set sees nothing.
func SectionsFor(caps CapabilitySet) []Section {
	sections := make([]Section, 0, len(sectionTable))
	for _, entry := range sectionTable {
		if entry.visible(caps) {
			sections = append(sections, entry.section)
		}
	}
	return sections
}
