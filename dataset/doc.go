// Copyright (c) CommuteFlow Authors.
// Licensed under the MIT License.

/*
Package dataset loads and serves the commuter survey data.

Two sources are supported: a CSV file with one row per commuter, and a
relational table managed through GORM (SQLite for local runs, PostgreSQL
or MySQL in deployments). Both are exposed through the Store interface so
the simulation and the API never care where a profile came from.

Parse-level problems in the CSV (short rows, non-numeric scores) skip the
row with a logged warning; semantic validation of a profile happens at
the point of use.
*/
package dataset
