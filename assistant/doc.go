// Copyright (c) CommuteFlow Authors.
// Licensed under the MIT License.

/*
Package assistant orchestrates the conversational layer: sessions, chat
history, and the routing between rule-based recommendations and the LLM
provider.

A session binds a conversation to an optional commuter profile and the
simulation insights computed when the profile was selected. Messages that
ask for recommendations are answered from the rule engine; everything
else goes to the configured provider with the profile and insights folded
into the system prompt.
*/
package assistant
