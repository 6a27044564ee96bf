package normalize

// Course is a normalized Canvas course.
type Course struct {
	ID              *string
	Name            *string
	CourseCode      *string
	TermName        *string
	EnrollmentState *string
	WorkflowState   *string
	HTMLURL         *string
}

type courseWire struct {
	ID            *string `mapstructure:"id"`
	Name          *string `mapstructure:"name"`
	CourseName    *string `mapstructure:"course_name"`
	CourseCode    *string `mapstructure:"course_code"`
	WorkflowState *string `mapstructure:"workflow_state"`
	HTMLURL       *string `mapstructure:"html_url"`
	Term          map[string]any `mapstructure:"term"`
	Enrollments []struct {
		EnrollmentState *string `mapstructure:"enrollment_state"`
	} `mapstructure:"enrollments"`
}

// NewCourse decodes a raw course record.
//
// The name falls back to course_name and then course_code, because some
// instances omit "name" for courses the user can only partially see.
func NewCourse(raw map[string]any) *Course {
	var w courseWire
	decode(raw, &w)

	c := &Course{
		ID:            nonEmpty(w.ID),
		Name:          firstOf(w.Name, w.CourseName, w.CourseCode),
		CourseCode:    nonEmpty(w.CourseCode),
		WorkflowState: nonEmpty(w.WorkflowState),
		HTMLURL:       nonEmpty(w.HTMLURL),
	}
	if w.Term != nil {
		var term struct {
			Name *string `mapstructure:"name"`
		}
		decode(w.Term, &term)
		c.TermName = nonEmpty(term.Name)
	}
	for _, e := range w.Enrollments {
		if s := nonEmpty(e.EnrollmentState); s != nil {
			c.EnrollmentState = s
			break
		}
	}
	return c
}

// NewCourses decodes a list of raw course records.
func NewCourses[T ~map[string]any](raw []T) []*Course {
	courses := make([]*Course, 0, len(raw))
	for _, r := range raw {
		courses = append(courses, NewCourse(r))
	}
	return courses
}

// CourseView is the display form of a course.
type CourseView struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Code  string `json:"code" yaml:"code"`
	Term  string `json:"term" yaml:"term"`
	State string `json:"state" yaml:"state"`
}

// View returns the display form of the course.
func (c *Course) View() CourseView {
	state := c.EnrollmentState
	if state == nil {
		state = c.WorkflowState
	}
	return CourseView{
		ID:    Or(c.ID),
		Name:  Or(c.Name),
		Code:  Or(c.CourseCode),
		Term:  Or(c.TermName),
		State: Or(state),
	}
}

// CourseWithAssignments is a course returned by the GraphQL due dates query
// together with its assignments.
type CourseWithAssignments struct {
	Course      *Course
	Assignments []*Assignment
}

// GraphQLCourses decodes the data object of a GraphQL allCourses query.
// Assignments inherit the course id and name.
func GraphQLCourses(data map[string]any) []CourseWithAssignments {
	rawCourses, _ := Keys(data)["all_courses"].([]any)

	out := make([]CourseWithAssignments, 0, len(rawCourses))
	for _, rc := range rawCourses {
		rawCourse, ok := rc.(map[string]any)
		if !ok {
			continue
		}

		course := NewCourse(rawCourse)
		entry := CourseWithAssignments{Course: course}

		conn, _ := rawCourse["assignments_connection"].(map[string]any)
		nodes, _ := conn["nodes"].([]any)
		for _, n := range nodes {
			rawAssignment, ok := n.(map[string]any)
			if !ok {
				continue
			}
			a := NewAssignment(rawAssignment)
			if a.CourseID == nil {
				a.CourseID = course.ID
			}
			a.CourseName = course.Name
			entry.Assignments = append(entry.Assignments, a)
		}
		out = append(out, entry)
	}
	return out
}
