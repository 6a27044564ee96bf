package normalize

import (
	"strconv"
	"time"
)

// User is a normalized Canvas user profile. It is used for display only.
type User struct {
	ID           *string
	Name         *string
	ShortName    *string
	SortableName *string
	LoginID      *string
	Email        *string
	AvatarURL    *string
}

type userWire struct {
	ID           *string `mapstructure:"id"`
	Name         *string `mapstructure:"name"`
	ShortName    *string `mapstructure:"short_name"`
	SortableName *string `mapstructure:"sortable_name"`
	LoginID      *string `mapstructure:"login_id"`
	Email        *string `mapstructure:"email"`
	PrimaryEmail *string `mapstructure:"primary_email"`
	AvatarURL    *string `mapstructure:"avatar_url"`
}

// NewUser decodes a raw user record.
func NewUser(raw map[string]any) *User {
	var w userWire
	decode(raw, &w)

	return &User{
		ID:           nonEmpty(w.ID),
		Name:         firstOf(w.Name, w.ShortName, w.SortableName),
		ShortName:    nonEmpty(w.ShortName),
		SortableName: nonEmpty(w.SortableName),
		LoginID:      nonEmpty(w.LoginID),
		Email:        firstOf(w.Email, w.PrimaryEmail),
		AvatarURL:    nonEmpty(w.AvatarURL),
	}
}

// UserView is the display form of a user.
type UserView struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	ShortName string `json:"short_name" yaml:"short_name"`
	LoginID   string `json:"login_id" yaml:"login_id"`
	Email     string `json:"email" yaml:"email"`
}

// View returns the display form of the user.
func (u *User) View() UserView {
	return UserView{
		ID:        Or(u.ID),
		Name:      Or(u.Name),
		ShortName: Or(u.ShortName),
		LoginID:   Or(u.LoginID),
		Email:     Or(u.Email),
	}
}

// Module is a normalized course module.
type Module struct {
	ID         *string
	Name       *string
	Position   *int
	ItemsCount *int
	State      *string
	Items      []*ModuleItem
}

// ModuleItem is a single entry of a module.
type ModuleItem struct {
	Title *string
	Type  *string
}

type moduleWire struct {
	ID            *string `mapstructure:"id"`
	Name          *string `mapstructure:"name"`
	Position      *int    `mapstructure:"position"`
	ItemsCount    *int    `mapstructure:"items_count"`
	State         *string `mapstructure:"state"`
	WorkflowState *string `mapstructure:"workflow_state"`
	Items         []struct {
		Title *string `mapstructure:"title"`
		Type  *string `mapstructure:"type"`
	} `mapstructure:"items"`
}

// NewModule decodes a raw module record. "state" is the user's progress and
// wins over "workflow_state".
func NewModule(raw map[string]any) *Module {
	var w moduleWire
	decode(raw, &w)

	m := &Module{
		ID:         nonEmpty(w.ID),
		Name:       nonEmpty(w.Name),
		Position:   w.Position,
		ItemsCount: w.ItemsCount,
		State:      firstOf(w.State, w.WorkflowState),
	}
	for _, item := range w.Items {
		m.Items = append(m.Items, &ModuleItem{
			Title: nonEmpty(item.Title),
			Type:  nonEmpty(item.Type),
		})
	}
	if m.ItemsCount == nil && len(m.Items) > 0 {
		n := len(m.Items)
		m.ItemsCount = &n
	}
	return m
}

// ModuleView is the display form of a module.
type ModuleView struct {
	Name     string `json:"name" yaml:"name"`
	Position string `json:"position" yaml:"position"`
	Items    string `json:"items" yaml:"items"`
	State    string `json:"state" yaml:"state"`
}

// View returns the display form of the module.
func (m *Module) View() ModuleView {
	return ModuleView{
		Name:     Or(m.Name),
		Position: formatInt(m.Position),
		Items:    formatInt(m.ItemsCount),
		State:    Or(m.State),
	}
}

// File is normalized file metadata.
type File struct {
	ID          *string
	DisplayName *string
	Size        *int64
	ContentType *string
	URL         *string
	UpdatedAt   *time.Time
}

type fileWire struct {
	ID          *string `mapstructure:"id"`
	DisplayName *string `mapstructure:"display_name"`
	Filename    *string `mapstructure:"filename"`
	Size        *int64  `mapstructure:"size"`
	ContentType *string `mapstructure:"content-type"`
	MimeClass   *string `mapstructure:"content_type"`
	URL         *string `mapstructure:"url"`
	UpdatedAt   *string `mapstructure:"updated_at"`
}

// NewFile decodes a raw file record.
func NewFile(raw map[string]any) *File {
	var w fileWire
	decode(raw, &w)

	return &File{
		ID:          nonEmpty(w.ID),
		DisplayName: firstOf(w.DisplayName, w.Filename),
		Size:        w.Size,
		ContentType: firstOf(w.ContentType, w.MimeClass),
		URL:         nonEmpty(w.URL),
		UpdatedAt:   parseTime(w.UpdatedAt),
	}
}

func formatInt(n *int) string {
	if n == nil {
		return NotAvailable
	}
	return strconv.Itoa(*n)
}
