// Package interfaces defines the contracts between the postprocessing core
// and the collaborators it consumes but does not implement.
//
// The hardware backend is reached through three abstractions:
//
//   - [IDisplay] is the acceleration context. It creates Filter Engine
//     bindings and surface pools and reports what the context can do.
//   - [IFilter] is one Filter Engine binding. It advertises supported
//     operations and formats, accepts operation values, and processes one
//     surface into another.
//   - [ISurfacePool] hands out reference-counted output surfaces for one
//     negotiated format.
//
// Frames leave the element through [IDownstream].
//
// # Operation Values
//
// Every [FilterOp] takes a typed [Value]. The concrete value types are
// comparable, so an applied value can be checked against the backend default
// with ==:
//
//	if err := filter.SetOperation(interfaces.OpDenoise, interfaces.Level(0.5)); err != nil {
//	    return err
//	}
//	atDefault := filter.Default(interfaces.OpDenoise) == interfaces.Level(0.5)
//
// # Processing Status
//
// [IFilter.Process] returns a [FilterStatus] instead of an error so callers
// can tell an operation the backend does not support (StatusUnsupported,
// recoverable by falling back to a simpler path) from a hard failure.
//
// # Simulation
//
// The testing package provides simulated implementations of every interface
// here; they record each call for verification and let tests restrict the
// advertised capabilities.
//
// # Thread Safety
//
// The element serialises all calls into one IFilter binding. Implementations
// of ISurfacePool must tolerate surfaces being released from any goroutine.
package interfaces
