// Copyright (c) 2024-2025 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package postgres provides the PostgreSQL adapter of the repo
// interfaces, backed by GORM over the pgx driver. The Pool, Conn, and
// Tx types wrap *gorm.DB instances; per-entity repository packages
// (vehiclesrp, locationsrp, ridesrp, usersrp) run their queries
// through them. Serialization failures raised by concurrent
// SERIALIZABLE transactions are translated into transient cerr errors
// by this package, so the core layers stay driver-agnostic.
package postgres
