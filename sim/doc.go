// Copyright (c) CommuteFlow Authors.
// Licensed under the MIT License.

/*
Package sim implements the agent-based crowding simulation.

One Simulator run materializes an Agent per commuter record, shares a
single TransitLine among the PT-usual agents, and executes a fixed number
of commute cycles. Every cycle all usual PT riders attempt to board, each
agent reacts to the perceived crowding through the TPB-derived decision
rule, and switch verdicts are accumulated into SimulationInsights.

The package is deliberately single-threaded: a run owns its agents and
line exclusively, and concurrent invocations must each construct their own
Simulator run state (Run does this internally, so calling Run from
multiple goroutines on distinct Simulator values is safe).
*/
package sim
