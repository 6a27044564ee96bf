package normalize

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeJSON(t *testing.T, s string) map[string]any {
	t.Helper()
	var raw map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &raw))
	return raw
}

func TestKeys(t *testing.T) {
	raw := decodeJSON(t, `{
		"_id": "42",
		"id": "Q291cnNlLTQy",
		"courseCode": "BIO-101",
		"term": {"name": "Fall"},
		"assignmentsConnection": {
			"nodes": [{"_id": "7", "dueAt": "2024-03-28T23:59:59Z", "pointsPossible": 10}]
		},
		"html_url": "https://canvas.example.edu/courses/42"
	}`)

	got := Keys(raw)

	assert.Equal(t, "42", got["id"])
	assert.Equal(t, "BIO-101", got["course_code"])
	assert.Equal(t, map[string]any{"name": "Fall"}, got["term"])
	assert.Equal(t, "https://canvas.example.edu/courses/42", got["html_url"])
	assert.NotContains(t, got, "_id")
	assert.NotContains(t, got, "courseCode")

	conn, ok := got["assignments_connection"].(map[string]any)
	require.True(t, ok)
	nodes, ok := conn["nodes"].([]any)
	require.True(t, ok)
	require.Len(t, nodes, 1)
	assert.Equal(t, map[string]any{
		"id":              "7",
		"due_at":          "2024-03-28T23:59:59Z",
		"points_possible": float64(10),
	}, nodes[0])

	// The input is not modified.
	assert.Contains(t, raw, "_id")
	assert.Nil(t, Keys(nil))
}

func TestNewAssignment_REST(t *testing.T) {
	a := NewAssignment(decodeJSON(t, `{
		"id": 123,
		"course_id": 456,
		"name": "Test Assignment",
		"due_at": "2024-03-28T23:59:59Z",
		"points_possible": 100,
		"html_url": "https://canvas.example.edu/courses/456/assignments/123",
		"submission": {
			"submitted_at": "2024-03-27T10:00:00Z",
			"graded_at": null,
			"workflow_state": "submitted",
			"score": null
		}
	}`))

	require.NotNil(t, a.ID)
	assert.Equal(t, "123", *a.ID)
	require.NotNil(t, a.CourseID)
	assert.Equal(t, "456", *a.CourseID)
	require.NotNil(t, a.DueAt)
	assert.Equal(t, time.Date(2024, 3, 28, 23, 59, 59, 0, time.UTC), a.DueAt.UTC())
	require.NotNil(t, a.PointsPossible)
	assert.Equal(t, 100.0, *a.PointsPossible)
	require.NotNil(t, a.Submission)
	assert.NotNil(t, a.Submission.SubmittedAt)
	assert.Nil(t, a.Submission.GradedAt)
	assert.Nil(t, a.Submission.Score)
	assert.Equal(t, StatusSubmitted, a.Status())

	view := a.View()
	assert.Equal(t, "Test Assignment", view.Name)
	assert.Equal(t, "Mar 28, 2024 at 11:59 PM", view.DueDate)
	assert.Equal(t, "100", view.Points)
	assert.Equal(t, "Submitted", view.Status)
	assert.Equal(t, NotAvailable, view.Course)
}

func TestNewAssignment_GraphQL(t *testing.T) {
	a := NewAssignment(decodeJSON(t, `{
		"_id": "9",
		"id": "QXNzaWdubWVudC05",
		"name": "Lab Report",
		"dueAt": "2024-04-01T12:30:00-06:00",
		"pointsPossible": 12.5,
		"htmlUrl": "https://canvas.example.edu/courses/1/assignments/9"
	}`))

	require.NotNil(t, a.ID)
	assert.Equal(t, "9", *a.ID)
	require.NotNil(t, a.DueAt)
	assert.Equal(t, time.Date(2024, 4, 1, 18, 30, 0, 0, time.UTC), a.DueAt.UTC())
	assert.Equal(t, "12.5", a.View().Points)
	assert.Equal(t, "https://canvas.example.edu/courses/1/assignments/9", a.View().URL)
}

func TestNewAssignment_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want AssignmentView
	}{
		{
			name: "missing due date",
			raw:  `{"id": 1, "name": "Essay", "points_possible": 5}`,
			want: AssignmentView{
				ID:      "1",
				Course:  NotAvailable,
				Name:    "Essay",
				DueDate: NotAvailable,
				Points:  "5",
				Status:  NotAvailable,
				URL:     NotAvailable,
			},
		},
		{
			name: "empty record",
			raw:  `{}`,
			want: AssignmentView{
				ID:      NotAvailable,
				Course:  NotAvailable,
				Name:    NotAvailable,
				DueDate: NotAvailable,
				Points:  NotAvailable,
				Status:  NotAvailable,
				URL:     NotAvailable,
			},
		},
		{
			name: "null and unparseable values",
			raw:  `{"name": null, "due_at": "2024-13-45", "points_possible": {"value": 3}}`,
			want: AssignmentView{
				ID:      NotAvailable,
				Course:  NotAvailable,
				Name:    NotAvailable,
				DueDate: NotAvailable,
				Points:  NotAvailable,
				Status:  NotAvailable,
				URL:     NotAvailable,
			},
		},
		{
			name: "malformed submission field keeps the rest of the submission",
			raw: `{"id": 2, "name": "Lab", "due_at": "2024-03-26T23:59:00Z",
				"submission": {"submitted_at": "2024-03-27T10:00:00Z", "score": "A-"}}`,
			want: AssignmentView{
				ID:      "2",
				Course:  NotAvailable,
				Name:    "Lab",
				DueDate: "Mar 26, 2024 at 11:59 PM",
				Points:  NotAvailable,
				Status:  StatusSubmitted,
				URL:     NotAvailable,
			},
		},
		{
			name: "submission that is not an object",
			raw:  `{"name": "Lab", "submission": "pending"}`,
			want: AssignmentView{
				ID:      NotAvailable,
				Course:  NotAvailable,
				Name:    "Lab",
				DueDate: NotAvailable,
				Points:  NotAvailable,
				Status:  NotAvailable,
				URL:     NotAvailable,
			},
		},
		{
			name: "blank strings",
			raw:  `{"name": "  ", "due_at": ""}`,
			want: AssignmentView{
				ID:      NotAvailable,
				Course:  NotAvailable,
				Name:    NotAvailable,
				DueDate: NotAvailable,
				Points:  NotAvailable,
				Status:  NotAvailable,
				URL:     NotAvailable,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewAssignment(decodeJSON(t, tt.raw)).View())
		})
	}
}

func TestAssignment_Status(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name       string
		submission *Submission
		want       string
	}{
		{"no submission", nil, NotAvailable},
		{"not submitted", &Submission{}, StatusNotSubmitted},
		{"submitted", &Submission{SubmittedAt: &now}, StatusSubmitted},
		{"graded", &Submission{SubmittedAt: &now, GradedAt: &now}, StatusGraded},
		{"graded without submission", &Submission{GradedAt: &now}, StatusGraded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Assignment{Submission: tt.submission}
			assert.Equal(t, tt.want, a.Status())
		})
	}
}

func TestAssignment_DueWithin(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) *Assignment {
		due := now.Add(d)
		return &Assignment{DueAt: &due}
	}

	end := now.Add(7 * 24 * time.Hour)
	assert.False(t, at(0).DueWithin(now, end))
	assert.True(t, at(time.Second).DueWithin(now, end))
	assert.True(t, at(7*24*time.Hour).DueWithin(now, end))
	assert.False(t, at(7*24*time.Hour+time.Second).DueWithin(now, end))
	assert.False(t, (&Assignment{}).DueWithin(now, end))
}

func TestSortByDueDate(t *testing.T) {
	day := func(d int) *time.Time {
		due := time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
		return &due
	}
	name := func(s string) *string { return &s }

	assignments := []*Assignment{
		{Name: name("undated"), DueAt: nil},
		{Name: name("third"), DueAt: day(20)},
		{Name: name("first"), DueAt: day(1)},
		{Name: name("second"), DueAt: day(5)},
	}
	SortByDueDate(assignments)

	var names []string
	for _, a := range assignments {
		names = append(names, *a.Name)
	}
	assert.Equal(t, []string{"first", "second", "third", "undated"}, names)
}

func TestNewCourse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want CourseView
	}{
		{
			name: "rest course",
			raw: `{"id": 456, "name": "Test Course", "course_code": "TEST101",
				"term": {"name": "Spring 2024"},
				"enrollments": [{"type": "student", "enrollment_state": "active"}],
				"workflow_state": "available"}`,
			want: CourseView{ID: "456", Name: "Test Course", Code: "TEST101", Term: "Spring 2024", State: "active"},
		},
		{
			name: "name falls back to course code",
			raw:  `{"id": "7", "course_code": "CHEM-2", "workflow_state": "available"}`,
			want: CourseView{ID: "7", Name: "CHEM-2", Code: "CHEM-2", Term: NotAvailable, State: "available"},
		},
		{
			name: "name falls back to course_name",
			raw:  `{"id": "8", "course_name": "Physics"}`,
			want: CourseView{ID: "8", Name: "Physics", Code: NotAvailable, Term: NotAvailable, State: NotAvailable},
		},
		{
			name: "term that is not an object",
			raw:  `{"id": 10, "name": "Art", "term": "Fall", "workflow_state": "available"}`,
			want: CourseView{ID: "10", Name: "Art", Code: NotAvailable, Term: NotAvailable, State: "available"},
		},
		{
			name: "restricted course",
			raw:  `{"id": 9, "access_restricted_by_date": true}`,
			want: CourseView{ID: "9", Name: NotAvailable, Code: NotAvailable, Term: NotAvailable, State: NotAvailable},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewCourse(decodeJSON(t, tt.raw)).View())
		})
	}
}

func TestGraphQLCourses(t *testing.T) {
	data := decodeJSON(t, `{
		"allCourses": [
			{
				"_id": "1",
				"name": "Biology",
				"courseCode": "BIO",
				"term": {"name": "Fall"},
				"assignmentsConnection": {
					"nodes": [
						{"_id": "10", "name": "Cells", "dueAt": "2024-09-01T10:00:00Z", "pointsPossible": 10},
						{"_id": "11", "name": "Genes", "dueAt": null}
					]
				}
			},
			{"_id": "2", "name": "Art", "assignmentsConnection": {"nodes": []}}
		]
	}`)

	courses := GraphQLCourses(data)
	require.Len(t, courses, 2)

	bio := courses[0]
	assert.Equal(t, CourseView{ID: "1", Name: "Biology", Code: "BIO", Term: "Fall", State: NotAvailable}, bio.Course.View())
	require.Len(t, bio.Assignments, 2)
	assert.Equal(t, "1", *bio.Assignments[0].CourseID)
	assert.Equal(t, "Biology", bio.Assignments[0].View().Course)
	assert.Equal(t, "Sep 01, 2024 at 10:00 AM", bio.Assignments[0].View().DueDate)
	assert.Equal(t, NotAvailable, bio.Assignments[1].View().DueDate)

	assert.Empty(t, courses[1].Assignments)
	assert.Empty(t, GraphQLCourses(map[string]any{}))
}

func TestNewUser(t *testing.T) {
	u := NewUser(decodeJSON(t, `{
		"id": 5, "name": "Ada Lovelace", "short_name": "Ada",
		"sortable_name": "Lovelace, Ada", "login_id": "ada", "primary_email": "ada@example.edu"
	}`))

	assert.Equal(t, UserView{
		ID:        "5",
		Name:      "Ada Lovelace",
		ShortName: "Ada",
		LoginID:   "ada",
		Email:     "ada@example.edu",
	}, u.View())

	assert.Equal(t, NotAvailable, NewUser(nil).View().Email)
}

func TestNewModule(t *testing.T) {
	m := NewModule(decodeJSON(t, `{
		"id": 3, "name": "Week 1", "position": 1, "state": "completed", "workflow_state": "active",
		"items": [{"title": "Intro", "type": "Page"}, {"title": "Quiz", "type": "Quiz"}]
	}`))

	assert.Equal(t, ModuleView{Name: "Week 1", Position: "1", Items: "2", State: "completed"}, m.View())
	require.Len(t, m.Items, 2)
	assert.Equal(t, "Quiz", *m.Items[1].Title)

	empty := NewModule(decodeJSON(t, `{"name": "Later"}`))
	assert.Equal(t, ModuleView{Name: "Later", Position: NotAvailable, Items: NotAvailable, State: NotAvailable}, empty.View())
}

func TestNewFile(t *testing.T) {
	f := NewFile(decodeJSON(t, `{
		"id": 77, "display_name": "syllabus.pdf", "size": 2048,
		"content-type": "application/pdf", "url": "https://canvas.example.edu/files/77/download",
		"updated_at": "2024-01-15T08:00:00Z"
	}`))

	require.NotNil(t, f.ID)
	assert.Equal(t, "77", *f.ID)
	assert.Equal(t, "syllabus.pdf", *f.DisplayName)
	assert.Equal(t, int64(2048), *f.Size)
	assert.Equal(t, "application/pdf", *f.ContentType)
	require.NotNil(t, f.UpdatedAt)
	assert.Equal(t, 2024, f.UpdatedAt.Year())
}
