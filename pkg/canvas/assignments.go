package canvas

import (
	"context"
	"fmt"
	"net/url"
)

// ===================================================================
// Assignments and Submissions
// ===================================================================
// All methods map onto /api/v1/courses/:course_id/assignments/* endpoints

// Assignment buckets understood by Canvas.
const (
	BucketPast        = "past"
	BucketOverdue     = "overdue"
	BucketUndated     = "undated"
	BucketUngraded    = "ungraded"
	BucketUnsubmitted = "unsubmitted"
	BucketUpcoming    = "upcoming"
	BucketFuture      = "future"
)

// Assignment orderings understood by Canvas.
const (
	OrderByPosition = "position"
	OrderByName     = "name"
	OrderByDueAt    = "due_at"
)

// ListAssignmentsOptions filters the assignment listing.
type ListAssignmentsOptions struct {
	// Include requests additional data, e.g. "submission".
	Include []string

	// Bucket restricts the listing to a Canvas date bucket.
	Bucket string

	// OrderBy is one of the OrderBy constants.
	OrderBy string

	// SearchTerm filters assignments by partial name.
	SearchTerm string
}

func (o *ListAssignmentsOptions) values() url.Values {
	v := url.Values{}
	if o == nil {
		return v
	}
	addList(v, "include[]", o.Include)
	if o.Bucket != "" {
		v.Set("bucket", o.Bucket)
	}
	if o.OrderBy != "" {
		v.Set("order_by", o.OrderBy)
	}
	if o.SearchTerm != "" {
		v.Set("search_term", o.SearchTerm)
	}
	return v
}

func assignmentsPath(courseID string) string {
	return fmt.Sprintf("courses/%s/assignments", url.PathEscape(courseID))
}

func assignmentPath(courseID, assignmentID string) string {
	return fmt.Sprintf("%s/%s", assignmentsPath(courseID), url.PathEscape(assignmentID))
}

// ListAssignments lists every assignment of a course.
func (c *Client) ListAssignments(ctx context.Context, courseID string, opts *ListAssignmentsOptions) ([]Record, error) {
	assignments, err := c.Paginate(ctx, assignmentsPath(courseID), opts.values())
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments of course %s: %w", courseID, err)
	}
	return assignments, nil
}

// GetAssignment retrieves a single assignment.
func (c *Client) GetAssignment(ctx context.Context, courseID, assignmentID string, include ...string) (Record, error) {
	v := url.Values{}
	addList(v, "include[]", include)

	assignment, err := c.GetRecord(ctx, assignmentPath(courseID, assignmentID), v)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment %s: %w", assignmentID, err)
	}
	return assignment, nil
}

// AssignmentParams are the writable assignment attributes.
type AssignmentParams struct {
	Name           string   `json:"name,omitempty"`
	PointsPossible *float64 `json:"points_possible,omitempty"`
	DueAt          string   `json:"due_at,omitempty"`
	Description    string   `json:"description,omitempty"`
	Published      *bool    `json:"published,omitempty"`
}

// CreateAssignment creates an assignment in a course.
func (c *Client) CreateAssignment(ctx context.Context, courseID string, params AssignmentParams) (Record, error) {
	var created Record
	body := map[string]any{"assignment": params}
	if err := c.Post(ctx, assignmentsPath(courseID), body, &created); err != nil {
		return nil, fmt.Errorf("failed to create assignment in course %s: %w", courseID, err)
	}
	return created, nil
}

// UpdateAssignment updates an assignment.
func (c *Client) UpdateAssignment(ctx context.Context, courseID, assignmentID string, params AssignmentParams) (Record, error) {
	var updated Record
	body := map[string]any{"assignment": params}
	if err := c.Put(ctx, assignmentPath(courseID, assignmentID), body, &updated); err != nil {
		return nil, fmt.Errorf("failed to update assignment %s: %w", assignmentID, err)
	}
	return updated, nil
}

// DeleteAssignment deletes an assignment and returns the deleted record.
func (c *Client) DeleteAssignment(ctx context.Context, courseID, assignmentID string) (Record, error) {
	var deleted Record
	if err := c.Delete(ctx, assignmentPath(courseID, assignmentID), &deleted); err != nil {
		return nil, fmt.Errorf("failed to delete assignment %s: %w", assignmentID, err)
	}
	return deleted, nil
}

// ListSubmissions lists the submissions of an assignment.
func (c *Client) ListSubmissions(ctx context.Context, courseID, assignmentID string) ([]Record, error) {
	submissions, err := c.Paginate(ctx, assignmentPath(courseID, assignmentID)+"/submissions", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions of assignment %s: %w", assignmentID, err)
	}
	return submissions, nil
}

// GetSubmission retrieves the submission of a user for an assignment.
// userID may be "self".
func (c *Client) GetSubmission(ctx context.Context, courseID, assignmentID, userID string) (Record, error) {
	path := fmt.Sprintf("%s/submissions/%s", assignmentPath(courseID, assignmentID), url.PathEscape(userID))

	submission, err := c.GetRecord(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get submission of user %s: %w", userID, err)
	}
	return submission, nil
}

// SubmissionParams are the writable grading attributes of a submission.
type SubmissionParams struct {
	PostedGrade string `json:"posted_grade,omitempty"`
	Excuse      *bool  `json:"excuse,omitempty"`
}

// UpdateSubmission grades or excuses a submission.
func (c *Client) UpdateSubmission(ctx context.Context, courseID, assignmentID, userID string, params SubmissionParams) (Record, error) {
	path := fmt.Sprintf("%s/submissions/%s", assignmentPath(courseID, assignmentID), url.PathEscape(userID))

	var updated Record
	if err := c.Put(ctx, path, map[string]any{"submission": params}, &updated); err != nil {
		return nil, fmt.Errorf("failed to update submission of user %s: %w", userID, err)
	}
	return updated, nil
}
