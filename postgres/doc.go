/*
Package postgres manages the application's database connection.

Connect opens the connection through GORM and runs any pending migrations
against the target database before handing it back. When the target is a
test database, the public schema is dropped first so each run starts clean.

DB wraps the raw handle with a small chainable query API whose finishers
translate driver errors into the sentinels the rest of the application
checks against.
*/
package postgres
