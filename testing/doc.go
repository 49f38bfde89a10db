// Package testing provides simulated acceleration backends for deterministic
// testing of the postprocessing element.
//
// # Overview
//
// The simulation mirrors a hardware display with its Filter Engine and
// surface pools but operates entirely in-memory. Every call made against a
// SimulatedFilter is recorded so that tests can verify the exact sequence of
// operations, deinterlacing requests and process invocations the element
// issued.
//
// # Usage
//
//	display := testing.NewSimulatedDisplay()
//	display.ConfigureFilters(func(f *testing.SimulatedFilter) {
//	    f.SupportOnlyMethods(interfaces.DeinterlaceBob)
//	})
//
//	sink := testing.NewRecordingDownstream()
//	elem := vpp.New(display, sink)
//
//	// Build input frames backed by simulated surfaces
//	buf := testing.NewSurfaceBuffer(info, 0, video.FlagTFF)
//
// # Call Logs
//
// Each FilterCall contains the method name and the arguments relevant to it.
// Use Calls to retrieve the log and CallsTo to filter it by method.
//
// # Thread Safety
//
// All simulated types are safe for concurrent use. Internal synchronization
// uses sync.Mutex.
package testing
