// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package localdb handles the client's local database schema.

# Opening

Open connects using the configured driver and ensures the schema:

	db, err := localdb.Open(cfg)

DATABASE_TYPE selects sqlite (default, via modernc.org/sqlite) or postgres
(via lib/pq, for shared-host installs where several clients pool one store).

# Schema Creation

CreateSchema initializes all required tables:

	if err := localdb.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - session: the persisted credential/identity triple (at most one row)
  - fallback_team: append-only snapshots of teams created offline
  - grade: one-shot teammate ratings, with a synced flag

All timestamps are written by the client so the schema is identical on both
drivers.
*/
package localdb
