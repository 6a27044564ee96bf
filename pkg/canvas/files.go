package canvas

import (
	"context"
	"fmt"
	"net/url"
)

// ===================================================================
// Files and Folders
// ===================================================================

// ListCourseFiles lists the files of a course.
func (c *Client) ListCourseFiles(ctx context.Context, courseID string) ([]Record, error) {
	files, err := c.Paginate(ctx, fmt.Sprintf("courses/%s/files", url.PathEscape(courseID)), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list files of course %s: %w", courseID, err)
	}
	return files, nil
}

// ListCourseFolders lists the folders of a course.
func (c *Client) ListCourseFolders(ctx context.Context, courseID string) ([]Record, error) {
	folders, err := c.Paginate(ctx, fmt.Sprintf("courses/%s/folders", url.PathEscape(courseID)), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list folders of course %s: %w", courseID, err)
	}
	return folders, nil
}

// GetFile retrieves the metadata of a single file.
func (c *Client) GetFile(ctx context.Context, fileID string) (Record, error) {
	file, err := c.GetRecord(ctx, "files/"+url.PathEscape(fileID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get file %s: %w", fileID, err)
	}
	return file, nil
}
