package display

// HeadlessBackend runs the machine with no UI at all: useful for
// automated trace runs and benchmarking where no human is watching.
type HeadlessBackend struct {
	// Frames, if nonzero, stops Run after that many frames. Zero means
	// run forever, relying on the caller to kill the process.
	Frames uint64
}

// Run calls m.RunFrame Frames times, or forever when Frames is zero.
func (h *HeadlessBackend) Run(m Machine) error {
	if h.Frames == 0 {
		for {
			m.RunFrame()
		}
	}
	for i := uint64(0); i < h.Frames; i++ {
		m.RunFrame()
	}
	return nil
}
