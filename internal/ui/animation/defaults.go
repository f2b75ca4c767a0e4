package animation

import "time"

// DefaultConfig returns the 300ms out / 300ms in fade used on mode changes.
func DefaultConfig() Config {
	return Config{
		FadeOut:       300 * time.Millisecond,
		FadeIn:        300 * time.Millisecond,
		FrameInterval: 30 * time.Millisecond,
	}
}
