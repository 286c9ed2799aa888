// Package migrations embeds the schema applied at test setup and available to
// deployment tooling.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS

// Schema returns the full schema SQL in application order.
func Schema() (string, error) {
	data, err := FS.ReadFile("001_create_clients.sql")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
