// Package swagger embeds the OpenAPI document served under /swagger.
package swagger

import _ "embed"

// Spec is the OpenAPI 2.0 document for the user API.
//
//go:embed user.swagger.json
var Spec []byte
