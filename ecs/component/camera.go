package component

// Camera holds follow-target and viewport settings for a camera entity.
type Camera struct {
	TargetName string
	Zoom       float64
	ViewWidth  float64
	ViewHeight float64
}

var CameraComponent = NewComponent[Camera]()

// CameraParams are the tunable follow constants. Lerp and smoothing are
// per-tick blend factors in [0,1].
type CameraParams struct {
	LerpX               float64 `json:"lerpX"`
	LerpY               float64 `json:"lerpY"`
	DeadzoneWidth       float64 `json:"deadzoneWidth"`
	DeadzoneHeight      float64 `json:"deadzoneHeight"`
	LookaheadX          float64 `json:"lookaheadX"`
	LookaheadY          float64 `json:"lookaheadY"`
	LookaheadSmoothingX float64 `json:"lookaheadSmoothingX"`
	LookaheadSmoothingY float64 `json:"lookaheadSmoothingY"`
	LookaheadThresholdX float64 `json:"lookaheadThresholdX"`
	LookaheadThresholdY float64 `json:"lookaheadThresholdY"`
	ShowDeadzoneDebug   bool    `json:"showDeadzoneDebug"`
}

func DefaultCameraParams() CameraParams {
	return CameraParams{
		LerpX:               0.1,
		LerpY:               0.1,
		DeadzoneWidth:       100,
		DeadzoneHeight:      80,
		LookaheadX:          60,
		LookaheadY:          30,
		LookaheadSmoothingX: 0.05,
		LookaheadSmoothingY: 0.05,
		LookaheadThresholdX: 10,
		LookaheadThresholdY: 50,
	}
}

var CameraParamsComponent = NewComponent[CameraParams]()

// CameraState is the camera's running follow state. ScrollX/ScrollY is the
// world-space top-left of the view.
type CameraState struct {
	LookaheadOffsetX float64
	LookaheadOffsetY float64
	ScrollX          float64
	ScrollY          float64
	// Deadzone rect in world space from the last update.
	DeadzoneX float64
	DeadzoneY float64
	Started   bool
}

var CameraStateComponent = NewComponent[CameraState]()
