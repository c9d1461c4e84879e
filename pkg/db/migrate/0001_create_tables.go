// Package migrate provides database migration functionality.
package migrate

// createTables adds users, teams, team members, time sessions, and break
// segments with the one-open-session and one-open-break indexes.
var createTables = sqlMigration(1, "create tables")
