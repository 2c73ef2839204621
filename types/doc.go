// Copyright (c) CommuteFlow Authors.
// Licensed under the MIT License.

/*
Package types provides the shared type definitions of CommuteFlow.

types is the lowest-level public package and depends on no other package
in the module. It defines the contracts shared by dataset, sim, recommend,
assistant and api:

  - CommuterRecord     — one commuter dataset row (identity + TPB scores)
  - Mode               — the closed set of commute mode labels
  - SimulationInsights — aggregate output of one crowding simulation run
  - Error / ErrorCode  — structured error system with HTTP status, Retryable
    and Provider markers

TPB stands for Theory of Planned Behavior: attitude, subjective norm (SN)
and perceived behavioral control (PBC) scores per mode, plus an intention
score per mode, all on a 1–7 survey scale.
*/
package types
