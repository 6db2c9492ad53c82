package media

// Prober bundles the file probes behind the interface the chat classifier
// expects.
type Prober struct {
	FFProbe FFProbe
}

func (p Prober) IsAnimated(path string) bool     { return IsAnimatedWebP(path) }
func (p Prober) IsValidSticker(path string) bool { return IsValidSticker(path) }

func (p Prober) Duration(path string) (float64, bool) {
	return p.FFProbe.Duration(path)
}
