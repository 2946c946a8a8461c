package parameter

import "time"

// Frame loop
const (
	// FrameUpdateInterval is the wall-clock frame interval; exactly one tick runs per frame
	FrameUpdateInterval = time.Second / TickRate

	// FrameRateWindow is the number of frames averaged for the displayed frame rate
	FrameRateWindow = 30
)

// Event queue limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 256

	// EventBufferMask is the bitmask for fast modulo operations (256 - 1)
	EventBufferMask = 255
)

// Input
const (
	// KeyHoldWindow is how long a key counts as held after its last press event
	// Terminals report presses only; auto-repeat refreshes the window
	KeyHoldWindow = 250 * time.Millisecond
)

// Recorder defaults
const (
	// RecorderSampleInterval records one telemetry sample every N ticks
	RecorderSampleInterval = 6

	// RecorderBatchSize is the sample buffer size flushed in one insert
	RecorderBatchSize = 500
)
