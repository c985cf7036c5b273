package aquarium

// ToastKind distinguishes notification styles.
type ToastKind uint8

const (
	ToastAdd ToastKind = iota
	ToastRemove
)

// ToastParams controls how long a toast stays up.
type ToastParams struct {
	VisibleMs float64
	FadeMs    float64
}

// Toast is a transient message shown after a fish is added or removed.
type Toast struct {
	Kind    ToastKind
	Message string
	AgeMs   float64
}

// Alpha returns the toast opacity: fully opaque while visible, then
// fading linearly to zero.
func (t Toast) Alpha(p ToastParams) float64 {
	if t.AgeMs <= p.VisibleMs {
		return 1
	}
	if p.FadeMs <= 0 {
		return 0
	}
	a := 1 - (t.AgeMs-p.VisibleMs)/p.FadeMs
	if a < 0 {
		return 0
	}
	return a
}

// expired reports whether the fade has finished.
func (t Toast) expired(p ToastParams) bool {
	return t.AgeMs >= p.VisibleMs+p.FadeMs
}
