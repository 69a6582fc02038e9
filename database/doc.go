// Package database provides the connection capability migrations run against, and a Store for
// recording which migrations have been applied.
//
// A migration script is submitted to the database as a single batch through [Execer]. Any
// *sql.DB, *sql.Tx or *sql.Conn satisfies it.
//
// The Store interface is meant to be generic and not tied to any specific database. It's possible
// to implement a custom Store for a database that is not supported and pass it to the provider.
package database
