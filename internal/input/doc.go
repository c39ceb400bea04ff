// Package input is the root of the input-mapping pipeline.
//
// Raw device state enters through snapshot, flows through bindings and
// their modifier chains into per-action values, and trigger state
// machines turn those values into lifecycle events. The subpackages
// layer bottom-up:
//
//   - value: the typed values actions carry (Bool, Axis1D/2D/3D)
//   - control: device-agnostic identities for keys, buttons, and axes
//   - snapshot: the per-tick raw input view the engine reads
//   - modifier: per-binding value transforms (dead zones, scaling, ...)
//   - trigger: activation state machines (press, hold, tap, chords, ...)
//   - action: action states, lifecycle events, and transition rules
//   - binding: control-to-action plumbing and value accumulation
//   - context: action declarations, priorities, and the registry
//   - engine: the per-tick evaluator tying the layers together
package input
