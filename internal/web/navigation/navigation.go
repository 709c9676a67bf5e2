// Package navigation describes where a page sits in the site, for the menu and
// the admin breadcrumbs.
package navigation

// Sections of the site.
const (
	SectionPublic = "public"
	SectionAdmin  = "admin"

	adminRoot = "/admin"
)

// BreadcrumbItem represents a single breadcrumb link.
type BreadcrumbItem struct {
	Title  string
	URL    string
	Active bool
}

// Context represents the navigation context for a page.
type Context struct {
	ActiveSection string
	ActivePage    string
	Breadcrumbs   []BreadcrumbItem
	PageTitle     string
}

// NewContext creates a new navigation context.
func NewContext(pageTitle, activeSection, activePage string) *Context {
	return &Context{
		PageTitle:     pageTitle,
		ActiveSection: activeSection,
		ActivePage:    activePage,
		Breadcrumbs:   make([]BreadcrumbItem, 0),
	}
}

// Admin creates the context of an admin page. Every admin page below the
// dashboard gets the dashboard as its first breadcrumb.
func Admin(pageTitle, activePage, url string) *Context {
	ctx := NewContext(pageTitle, SectionAdmin, activePage)

	if url == adminRoot {
		return ctx.AddBreadcrumb("Dashboard", adminRoot, true)
	}

	return ctx.
		AddBreadcrumb("Dashboard", adminRoot, false).
		AddBreadcrumb(pageTitle, url, true)
}

// AddBreadcrumb adds a breadcrumb item to the context.
func (c *Context) AddBreadcrumb(title, url string, active bool) *Context {
	c.Breadcrumbs = append(c.Breadcrumbs, BreadcrumbItem{
		Title:  title,
		URL:    url,
		Active: active,
	})

	return c
}

// IsActive checks if the given section and page match the current context.
func (c *Context) IsActive(section, page string) bool {
	return c.ActiveSection == section && c.ActivePage == page
}

// IsSectionActive checks if the given section is active.
func (c *Context) IsSectionActive(section string) bool {
	return c.ActiveSection == section
}
