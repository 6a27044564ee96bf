package normalize

import (
	"sort"
	"strconv"
	"time"
)

// DueDateLayout is the display format of due dates.
const DueDateLayout = "Jan 02, 2006 at 03:04 PM"

// Submission statuses.
const (
	StatusGraded       = "Graded"
	StatusSubmitted    = "Submitted"
	StatusNotSubmitted = "Not submitted"
)

// Assignment is a normalized Canvas assignment.
type Assignment struct {
	ID             *string
	CourseID       *string
	Name           *string
	DueAt          *time.Time
	PointsPossible *float64
	HTMLURL        *string
	Submission     *Submission

	// CourseName is not part of the Canvas record. Callers that fetched the
	// assignment through a course fill it in.
	CourseName *string
}

// Submission is the current user's submission for an assignment.
type Submission struct {
	SubmittedAt   *time.Time
	GradedAt      *time.Time
	WorkflowState *string
	Score         *float64
}

type assignmentWire struct {
	ID             *string  `mapstructure:"id"`
	CourseID       *string  `mapstructure:"course_id"`
	Name           *string  `mapstructure:"name"`
	DueAt          *string  `mapstructure:"due_at"`
	PointsPossible *float64 `mapstructure:"points_possible"`
	HTMLURL        *string  `mapstructure:"html_url"`
	CourseName     *string  `mapstructure:"course_name"`

	// Decoded on its own so a bad field does not drop the whole submission.
	Submission map[string]any `mapstructure:"submission"`
}

type submissionWire struct {
	SubmittedAt   *string  `mapstructure:"submitted_at"`
	GradedAt      *string  `mapstructure:"graded_at"`
	WorkflowState *string  `mapstructure:"workflow_state"`
	Score         *float64 `mapstructure:"score"`
}

// NewAssignment decodes a raw assignment record.
func NewAssignment(raw map[string]any) *Assignment {
	var w assignmentWire
	decode(raw, &w)

	a := &Assignment{
		ID:             nonEmpty(w.ID),
		CourseID:       nonEmpty(w.CourseID),
		Name:           nonEmpty(w.Name),
		DueAt:          parseTime(w.DueAt),
		PointsPossible: w.PointsPossible,
		HTMLURL:        nonEmpty(w.HTMLURL),
		CourseName:     nonEmpty(w.CourseName),
	}
	if w.Submission != nil {
		var sw submissionWire
		decode(w.Submission, &sw)
		a.Submission = &Submission{
			SubmittedAt:   parseTime(sw.SubmittedAt),
			GradedAt:      parseTime(sw.GradedAt),
			WorkflowState: nonEmpty(sw.WorkflowState),
			Score:         sw.Score,
		}
	}
	return a
}

// NewAssignments decodes a list of raw assignment records.
func NewAssignments[T ~map[string]any](raw []T) []*Assignment {
	assignments := make([]*Assignment, 0, len(raw))
	for _, r := range raw {
		assignments = append(assignments, NewAssignment(r))
	}
	return assignments
}

// Status derives the submission status. It is NotAvailable when Canvas did
// not include a submission.
func (a *Assignment) Status() string {
	switch {
	case a.Submission == nil:
		return NotAvailable
	case a.Submission.GradedAt != nil:
		return StatusGraded
	case a.Submission.SubmittedAt != nil:
		return StatusSubmitted
	default:
		return StatusNotSubmitted
	}
}

// DueAfter reports whether the assignment has a due date strictly after t.
func (a *Assignment) DueAfter(t time.Time) bool {
	return a.DueAt != nil && a.DueAt.After(t)
}

// DueWithin reports whether the due date lies in (start, end].
func (a *Assignment) DueWithin(start, end time.Time) bool {
	return a.DueAfter(start) && !a.DueAt.After(end)
}

// AssignmentView is the display form of an assignment.
type AssignmentView struct {
	ID      string `json:"id" yaml:"id"`
	Course  string `json:"course" yaml:"course"`
	Name    string `json:"name" yaml:"name"`
	DueDate string `json:"due_date" yaml:"due_date"`
	Points  string `json:"points" yaml:"points"`
	Status  string `json:"status" yaml:"status"`
	URL     string `json:"url" yaml:"url"`
}

// View returns the display form of the assignment.
func (a *Assignment) View() AssignmentView {
	return AssignmentView{
		ID:      Or(a.ID),
		Course:  Or(a.CourseName),
		Name:    Or(a.Name),
		DueDate: FormatTime(a.DueAt),
		Points:  FormatPoints(a.PointsPossible),
		Status:  a.Status(),
		URL:     Or(a.HTMLURL),
	}
}

// FormatTime formats t with DueDateLayout, or returns NotAvailable.
func FormatTime(t *time.Time) string {
	if t == nil {
		return NotAvailable
	}
	return t.Format(DueDateLayout)
}

// FormatPoints formats a point value without trailing zeros.
func FormatPoints(p *float64) string {
	if p == nil {
		return NotAvailable
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

// SortByDueDate sorts assignments by due date ascending. Assignments without a
// due date sort last, in their original order.
func SortByDueDate(assignments []*Assignment) {
	sort.SliceStable(assignments, func(i, j int) bool {
		a, b := assignments[i].DueAt, assignments[j].DueAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
}
