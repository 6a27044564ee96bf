package canvas

import (
	"context"
	"fmt"
	"net/url"
)

// ===================================================================
// Modules
// ===================================================================

func modulesPath(courseID string) string {
	return fmt.Sprintf("courses/%s/modules", url.PathEscape(courseID))
}

// ListModules lists the modules of a course. include may contain "items".
func (c *Client) ListModules(ctx context.Context, courseID string, include ...string) ([]Record, error) {
	v := url.Values{}
	addList(v, "include[]", include)

	modules, err := c.Paginate(ctx, modulesPath(courseID), v)
	if err != nil {
		return nil, fmt.Errorf("failed to list modules of course %s: %w", courseID, err)
	}
	return modules, nil
}

// GetModule retrieves a single module.
func (c *Client) GetModule(ctx context.Context, courseID, moduleID string) (Record, error) {
	module, err := c.GetRecord(ctx, modulesPath(courseID)+"/"+url.PathEscape(moduleID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get module %s: %w", moduleID, err)
	}
	return module, nil
}

// ListModuleItems lists the items of a module.
func (c *Client) ListModuleItems(ctx context.Context, courseID, moduleID string) ([]Record, error) {
	path := fmt.Sprintf("%s/%s/items", modulesPath(courseID), url.PathEscape(moduleID))

	items, err := c.Paginate(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list items of module %s: %w", moduleID, err)
	}
	return items, nil
}

// CreateModule creates a module in a course.
func (c *Client) CreateModule(ctx context.Context, courseID, name string) (Record, error) {
	var created Record
	body := map[string]any{"module": map[string]any{"name": name}}
	if err := c.Post(ctx, modulesPath(courseID), body, &created); err != nil {
		return nil, fmt.Errorf("failed to create module in course %s: %w", courseID, err)
	}
	return created, nil
}
