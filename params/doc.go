// Package params holds the postprocessing parameter state and the dirty-flag
// engine that pushes pending values into a Filter Engine binding.
//
// Every operation is a Param carrying its typed value and its own dirty bit.
// Host setters mark a parameter dirty; ApplyPending pushes dirty values and
// clears a bit only once the applied value equals the binding's default, so
// an element whose parameters have all returned to their defaults becomes
// eligible for passthrough again.
//
// Crop margins are settled without consulting the binding: they are a no-op
// whenever all four margins are zero. Setting a skin-tone level always
// supersedes the deprecated skin-tone toggle.
package params
