// Package events defines the yield evaluation events emitted on the event bus.
//
// Available event types:
//   - RecommendationEvent: one vehicle's evaluation outcome
//   - EvaluationEvent: summary of one fleet sweep
//   - MarketFallbackEvent: a location was served the neutral market snapshot
package events
