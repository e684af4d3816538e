// Package goal lifts plugin goals into build targets. It decides which
// explicitly bound goals are worth publishing, adds the goals contributed
// by detected frameworks, and names and classifies every goal.
package goal
