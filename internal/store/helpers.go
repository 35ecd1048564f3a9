package store

import "strings"

// DetectDSNType distinguishes PostgreSQL connection strings from SQLite file
// paths. Shared by the store and the WhatsApp client wiring.
func DetectDSNType(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host=") {
		return "postgres"
	}
	return "sqlite"
}
