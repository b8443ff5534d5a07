package appfs

import "embed"

// FS holds the SQL migrations applied by goose.
//
//go:embed migrations/*.sql
var FS embed.FS

// OpenAPI is the API description served on /docs.
//
//go:embed docs/openapi.json
var OpenAPI []byte
