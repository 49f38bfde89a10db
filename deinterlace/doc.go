// Package deinterlace implements the deinterlacing decisions of the
// postprocessing element: the per-frame activity state machine, the method
// fallback ladder and the bounded history of reference surfaces used by the
// motion-adaptive and motion-compensated methods.
package deinterlace
