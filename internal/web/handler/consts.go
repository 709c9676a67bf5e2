package handler

const (
	// BaseLayout is the default path for layout templates.
	BaseLayout = "layouts/base"

	// RootPath is the root path the route group.
	RootPath = "/"

	// RouterRootPath is the root path inside a route group.
	RouterRootPath = ""

	// LoginPath is where unauthenticated admin requests are sent.
	LoginPath = RootPath + "login"

	// AdminPath is the admin dashboard, the landing page after login.
	AdminPath = RootPath + "admin"

	// ErrorTemplate renders failed requests.
	ErrorTemplate = "error"

	// ErrNilDepsFatalLogMsg is used if app, cfg or a service pointer is nil.
	ErrNilDepsFatalLogMsg = "app, cfg or a service is nil"
)
