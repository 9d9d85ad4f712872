package parameter

import "time"

// Terminal Viewer
const (
	// ViewerFrameInterval is the redraw interval (~30 FPS)
	ViewerFrameInterval = 33 * time.Millisecond

	// ViewerGenerationDelay throttles the engine so generations stay watchable
	ViewerGenerationDelay = 150 * time.Millisecond

	// ViewerReportBuffer is the report channel capacity between engine and viewer
	ViewerReportBuffer = 4

	// ViewerChimeFrequency and ViewerChimeDuration shape the goal-reached tone
	ViewerChimeFrequency = 880
	ViewerChimeDuration  = 120 * time.Millisecond
	ViewerSampleRate     = 44100
)
