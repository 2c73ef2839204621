// Copyright (c) CommuteFlow Authors.
// Licensed under the MIT License.

// Command commuteflow runs the commuter crowding service: a CSV or
// database backed commuter dataset, an agent-based crowding simulation,
// a rule-based recommendation engine, and an LLM chat assistant behind
// an HTTP API.
//
// Usage:
//
//	commuteflow serve                        start the server
//	commuteflow serve --config config.yaml   start with a config file
//	commuteflow version                      show build information
//	commuteflow health                       probe a running server
package main
