package component

// Input stores per-frame input state for an entity. The Buffered fields are
// true only on the first frame of a press.
type Input struct {
	Left        bool
	Right       bool
	Jump        bool
	Dash        bool
	GroundPound bool

	JumpBuffered        bool
	DashBuffered        bool
	GroundPoundBuffered bool
}

var InputComponent = NewComponent[Input]()
