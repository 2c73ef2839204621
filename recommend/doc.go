// Copyright (c) CommuteFlow Authors.
// Licensed under the MIT License.

/*
Package recommend turns a commuter's TPB profile and optional simulation
insights into an ordered list of advisory messages.

Generation is a pure function: fixed threshold rules are evaluated in a
fixed order (PT, Car, Walk/Cycle, crowding, fallback), every applicable
rule appends its message, and identical inputs always produce identical
output. The thresholds are named constants so boundary behavior can be
probed exactly: a score of 4 is not "low", a score of 5 is "high".
*/
package recommend
