package canvas

import (
	"context"
	"fmt"
	"net/url"
)

// ===================================================================
// Courses
// ===================================================================
// All methods map onto /api/v1/courses/* endpoints

// Course workflow states accepted by the state[] filter.
const (
	CourseStateAvailable   = "available"
	CourseStateCompleted   = "completed"
	CourseStateUnpublished = "unpublished"
)

// ListCoursesOptions filters the course listing.
type ListCoursesOptions struct {
	// EnrollmentType filters by "teacher", "student", "ta", "observer" or "designer".
	EnrollmentType string

	// EnrollmentRole filters by a custom enrollment role.
	EnrollmentRole string

	// Include requests additional data, e.g. "term" or "total_students".
	Include []string

	// State filters by course workflow state.
	State []string
}

func (o *ListCoursesOptions) values() url.Values {
	v := url.Values{}
	if o == nil {
		return v
	}
	if o.EnrollmentType != "" {
		v.Set("enrollment_type", o.EnrollmentType)
	}
	if o.EnrollmentRole != "" {
		v.Set("enrollment_role", o.EnrollmentRole)
	}
	addList(v, "include[]", o.Include)
	addList(v, "state[]", o.State)
	return v
}

// ListCourses lists the courses the token's user is enrolled in.
func (c *Client) ListCourses(ctx context.Context, opts *ListCoursesOptions) ([]Record, error) {
	courses, err := c.Paginate(ctx, "courses", opts.values())
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

// ListActiveCourses lists available courses including their term.
func (c *Client) ListActiveCourses(ctx context.Context) ([]Record, error) {
	return c.ListCourses(ctx, &ListCoursesOptions{
		Include: []string{"term"},
		State:   []string{CourseStateAvailable},
	})
}

// GetCourse retrieves a single course.
func (c *Client) GetCourse(ctx context.Context, courseID string, include ...string) (Record, error) {
	v := url.Values{}
	addList(v, "include[]", include)

	course, err := c.GetRecord(ctx, "courses/"+url.PathEscape(courseID), v)
	if err != nil {
		return nil, fmt.Errorf("failed to get course %s: %w", courseID, err)
	}
	return course, nil
}

// ListStudents lists users enrolled as students in a course.
func (c *Client) ListStudents(ctx context.Context, courseID string) ([]Record, error) {
	v := url.Values{}
	v.Set("enrollment_type[]", "student")

	students, err := c.Paginate(ctx, fmt.Sprintf("courses/%s/users", url.PathEscape(courseID)), v)
	if err != nil {
		return nil, fmt.Errorf("failed to list students of course %s: %w", courseID, err)
	}
	return students, nil
}

func addList(v url.Values, key string, items []string) {
	for _, item := range items {
		if item != "" {
			v.Add(key, item)
		}
	}
}
