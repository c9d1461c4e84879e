package migrate

// createRequests adds correction requests, their comments, and adjustments.
var createRequests = sqlMigration(2, "create requests")
