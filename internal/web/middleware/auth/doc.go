// Package auth provides the session middleware for the web application.
//
// Identify runs for every request and stores whether the visitor holds an
// authenticated session in fiber.Locals under LocalsLoggedIn, where templates
// pick it up to show the admin links.
//
// RequireLogin guards the admin routes. A request without an authenticated
// session is redirected to the login page, it never fails with an error.
//
// Usage:
//
//	app.Use(authmiddleware.Identify(sessions))
//	app.Get("/admin", authmiddleware.RequireLogin(sessions), dashboard)
package auth
