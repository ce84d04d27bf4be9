package common

const (
	BaseWidth  = 1280
	BaseHeight = 720
	TPS        = 60

	// FrameMillis is the fixed tick length handed to systems as delta.
	FrameMillis = 1000.0 / TPS

	// ReferenceFrameMillis is the frame length the jump gravity scale is
	// normalised to.
	ReferenceFrameMillis = 16.67

	// DefaultGravity applies when no player params are loaded.
	DefaultGravity = 1000.0
)
