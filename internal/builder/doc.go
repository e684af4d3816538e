// Package builder assembles the target graph of a single project.
//
// # Pipeline
//
// Build runs a fixed sequence of passes for one project:
//  1. **Internal dependencies:** declared dependencies produced by the workspace.
//  2. **Relevant phases:** the phases the project's packaging and frameworks imply.
//  3. **Goals:** plugin goals lifted into targets.
//  4. **Cross-project edges:** which upstream targets each local target waits for.
//  5. **Organization:** every goal is placed in exactly one phase, adding phases
//     that goals strictly need until nothing is missing.
//  6. **Phase dependencies:** the lifecycle table restricted to what the
//     project needs.
//  7. **Goal dependencies:** goal-to-goal edges that skip empty phases.
//
// Each pass is a plain function of its inputs, so they can be tested in
// isolation. Build itself only sequences them and recovers from panics so
// that one broken project never takes the run down.
//
// # Fallback chains
//
// Cross-project edges are rendered as `project:a|b|c`. The consumer resolves
// such a reference to the first candidate target that exists in the upstream
// project (see targetid.Ref).
package builder
