// Package sim provides the core discrete-time simulation engine for the
// three-echelon supply chain model (Customer → OEM → Tier-1).
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - echelon.go: per-node state, the in-transit pipeline, and backlog service
//   - ordering.go: the baseline order-up-to policy and the forecast blend
//   - simulator.go: the per-period driver loop and trace recording
//
// # Architecture
//
// A run is fully sequential and deterministic: every stochastic draw comes
// from a ScenarioRNG stream derived from the master seed (rng.go), with the
// demand stream isolated from the forecast-error stream so that baseline and
// forecast-sharing runs realize the identical demand path. The driver owns
// the append-only trace (sim/trace), which the metrics engine (metrics.go)
// reduces to an immutable Results value. compare.go exposes the three entry
// points consumed by the CLI: RunBaseline, RunForecastSharing, and
// CompareScenarios.
//
// Configuration errors surface before any state is built; impossible internal
// states (negative inventory, pipeline length drift) panic, since they
// indicate a bookkeeping defect rather than a recoverable condition.
package sim
