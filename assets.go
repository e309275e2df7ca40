// Package mundoworld embeds the portal's templates and static assets.
package mundoworld

import "embed"

// StaticFS holds frontend/static: stylesheets, scripts and the JSON fixture
// collections under data/.
//
//go:embed all:frontend/static
var StaticFS embed.FS

// TemplateFS holds frontend/templates.
//
//go:embed all:frontend/templates
var TemplateFS embed.FS
