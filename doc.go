// Package main provides the entry point for folio, a personal portfolio website.
// It runs a Fiber web server that renders the public showcase (projects, skills,
// profile media, CV link and a contact form) and a password protected admin panel
// used to manage that content. Documents are kept in a SQL database through gorm
// or in MongoDB, while images and PDFs are delegated to an external media host.
package main
