// Copyright (c) CommuteFlow Authors.
// Licensed under the MIT License.

// Package handlers implements the HTTP handlers behind the CommuteFlow
// API surface. Every handler writes the shared Response envelope and
// maps domain errors onto HTTP status codes through the types.ErrorCode
// table in common.go.
package handlers
