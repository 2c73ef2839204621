// Copyright (c) CommuteFlow Authors.
// Licensed under the MIT License.

// Package api defines the wire types of the CommuteFlow HTTP API.
//
// The API exposes the commuter dataset, the crowding simulation, the
// rule-based recommendation engine, and the chat assistant:
//
//   - GET    /api/v1/profiles             list commuter profiles
//   - GET    /api/v1/profiles/{id}        fetch one profile
//   - POST   /api/v1/simulate             run a crowding simulation
//   - POST   /api/v1/recommendations      recommendations for a commuter
//   - POST   /api/v1/sessions             start a chat session
//   - GET    /api/v1/sessions/{id}        inspect a session
//   - DELETE /api/v1/sessions/{id}        end a session
//   - POST   /api/v1/sessions/{id}/profile   bind a commuter profile
//   - POST   /api/v1/sessions/{id}/messages  send a chat message
//   - GET    /healthz                     liveness probe
//   - GET    /readyz                      readiness probe
//
// When an API key is configured, endpoints under /api/ require it in the
// X-API-Key header.
package api
