package canvas

import (
	"context"
	"fmt"
	"net/url"
)

// ===================================================================
// Users
// ===================================================================

// SelfID addresses the user that owns the API token.
const SelfID = "self"

// GetSelf retrieves the user that owns the API token.
func (c *Client) GetSelf(ctx context.Context) (Record, error) {
	return c.GetUser(ctx, SelfID)
}

// GetUser retrieves a single user.
func (c *Client) GetUser(ctx context.Context, userID string) (Record, error) {
	user, err := c.GetRecord(ctx, "users/"+url.PathEscape(userID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", userID, err)
	}
	return user, nil
}

// ListUserCourses lists the courses of a user.
func (c *Client) ListUserCourses(ctx context.Context, userID string) ([]Record, error) {
	courses, err := c.Paginate(ctx, fmt.Sprintf("users/%s/courses", url.PathEscape(userID)), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses of user %s: %w", userID, err)
	}
	return courses, nil
}

// ListEnrollments lists the enrollments of a user.
func (c *Client) ListEnrollments(ctx context.Context, userID string) ([]Record, error) {
	enrollments, err := c.Paginate(ctx, fmt.Sprintf("users/%s/enrollments", url.PathEscape(userID)), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments of user %s: %w", userID, err)
	}
	return enrollments, nil
}
