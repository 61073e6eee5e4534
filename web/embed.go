package web

import "embed"

// TemplatesFS holds the page templates. Each page defines "content" and is
// rendered inside "base".
//
//go:embed templates/*.html
var TemplatesFS embed.FS

//go:embed static/*
var StaticFS embed.FS
