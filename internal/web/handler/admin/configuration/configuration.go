// Package configuration shows the running configuration, secrets redacted,
// as a searchable and paginated table.
package configuration

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/folio-cms/folio/internal/config"
	"github.com/folio-cms/folio/internal/web/handler"
	authmiddleware "github.com/folio-cms/folio/internal/web/middleware/auth"
	"github.com/folio-cms/folio/internal/web/navigation"
	"github.com/folio-cms/folio/internal/web/session"
)

const (
	// Path is the path of the configuration page.
	Path = handler.AdminPath + "/configuration"

	// TemplateName is the name of the configuration template.
	TemplateName = "admin/configuration"

	// DefaultPageSize is the default number of items per page.
	DefaultPageSize = 25

	maxPageSize = 100
)

// Service is the configuration handler service.
type Service struct {
	cfg *config.Config
}

// Data represents the data passed to the template.
type Data struct {
	Settings    []Setting
	Sections    []string
	CurrentPage int
	PageSize    int
	TotalItems  int
	TotalPages  int
	HasPrevPage bool
	HasNextPage bool
	PrevPage    int
	NextPage    int
	SearchQuery string
	Section     string
}

// Setting is one leaf of the configuration tree.
type Setting struct {
	Name    string
	Section string
	Value   string
}

// Handler is the configuration handler.
var Handler = Service{}

// Init initializes the configuration handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, sessions *session.Manager) {
	if app == nil || cfg == nil || sessions == nil {
		log.Fatal().Msg(handler.ErrNilDepsFatalLogMsg)
		return
	}

	s.cfg = cfg

	app.Get(Path, authmiddleware.RequireLogin(sessions), s.Get)
}

// Get renders one page of the configuration.
func (s *Service) Get(c *fiber.Ctx) error {
	all, err := Flatten(s.cfg)
	if err != nil {
		return err
	}

	page, pageSize := paginationParams(c)
	searchQuery, section := c.Query("search"), c.Query("section")

	settings := make([]Setting, 0, len(all))
	for _, st := range all {
		if include(st, searchQuery, section) {
			settings = append(settings, st)
		}
	}

	totalItems := len(settings)
	totalPages, page := totalPagesAndAdjust(totalItems, pageSize, page)
	start, end := pageBounds(totalItems, pageSize, page)

	return c.Render(TemplateName, fiber.Map{
		"Title":      s.cfg.Title,
		"Navigation": navigation.Admin("Configuration", "configuration", Path),
		"Data": Data{
			Settings:    settings[start:end],
			Sections:    sections(all),
			CurrentPage: page,
			PageSize:    pageSize,
			TotalItems:  totalItems,
			TotalPages:  totalPages,
			HasPrevPage: page > 1,
			HasNextPage: page < totalPages,
			PrevPage:    page - 1,
			NextPage:    page + 1,
			SearchQuery: searchQuery,
			Section:     section,
		},
	}, handler.BaseLayout)
}

// Flatten turns the redacted configuration into dotted key/value pairs sorted
// by name.
func Flatten(cfg *config.Config) ([]Setting, error) {
	raw, err := config.DumpConfigJSON(cfg)
	if err != nil {
		return nil, err
	}

	var tree map[string]any
	if err = json.Unmarshal([]byte(raw), &tree); err != nil {
		return nil, errors.Wrap(err, "failed to decode configuration")
	}

	var out []Setting
	walk("", tree, &out)

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}

func walk(prefix string, node map[string]any, out *[]Setting) {
	for k, v := range node {
		name := k
		if prefix != "" {
			name = prefix + "." + k
		}

		if child, ok := v.(map[string]any); ok {
			walk(name, child, out)
			continue
		}

		section, _, _ := strings.Cut(name, ".")
		if section == name {
			section = "general"
		}

		*out = append(*out, Setting{Name: name, Section: section, Value: fmt.Sprint(v)})
	}
}

func sections(all []Setting) []string {
	seen := map[string]bool{}

	var out []string

	for _, st := range all {
		if !seen[st.Section] {
			seen[st.Section] = true
			out = append(out, st.Section)
		}
	}

	sort.Strings(out)

	return out
}

func paginationParams(c *fiber.Ctx) (int, int) {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}

	pageSize := c.QueryInt("pageSize", DefaultPageSize)
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = DefaultPageSize
	}

	return page, pageSize
}

// include reports whether st matches the case-insensitive search and the
// section filter.
func include(st Setting, searchQuery, section string) bool {
	if searchQuery != "" {
		q := strings.ToLower(searchQuery)
		if !strings.Contains(strings.ToLower(st.Name), q) && !strings.Contains(strings.ToLower(st.Value), q) {
			return false
		}
	}

	return section == "" || st.Section == section
}

// totalPagesAndAdjust computes total pages and moves page into range.
func totalPagesAndAdjust(totalItems, pageSize, page int) (int, int) {
	totalPages := (totalItems + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if page > totalPages {
		page = totalPages
	}

	return totalPages, page
}

// pageBounds calculates start and end indices for slicing a page.
func pageBounds(totalItems, pageSize, page int) (int, int) {
	start := (page - 1) * pageSize
	end := min(start+pageSize, totalItems)
	start = max(min(start, end), 0)

	return start, end
}
