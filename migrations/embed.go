// Package migrations embeds the SQL schema of the ignored-issue store. The
// integration-test Postgres container applies the *.up.sql files in name
// order; deployments create the table themselves.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
