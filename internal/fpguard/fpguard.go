// Package fpguard installs a denormal-flushing floating point
// environment for the lifetime of a DSP work quantum: flush-to-zero and
// denormals-are-zero on the SSE control word avoid the severe slowdown
// denormal floats cause in tight audio synthesis loops (reverb tails,
// decaying envelopes, anything that asymptotically approaches zero).
//
// Go exposes no portable, assembly-free way to read or write MXCSR/FPCR,
// so Guard is a documented no-op for now: it preserves the call shape —
// install at the top of a work quantum, release via defer — so a future
// platform-specific implementation (cgo, or a tiny .s stub per GOARCH)
// has exactly one seam to fill in without touching call sites.
package fpguard

// Release restores the floating-point environment a Guard call saved.
type Release func()

// Guard installs the (currently no-op) denormal-flushing environment and
// returns a Release to restore it. Call at the top of every worker
// iteration and at the top of a block render.
func Guard() Release {
	return func() {}
}
