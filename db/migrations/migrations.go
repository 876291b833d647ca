package migrations

import "embed"

// FS embeds the SQL migrations for the ad engine schema (advertisers,
// clients, campaigns, events, ml_scores). golang-migrate reads them via
// the iofs driver when applying migrations.
//
//go:embed *.sql
var FS embed.FS

// Version is the latest migration version this package ships.
const Version = 1
