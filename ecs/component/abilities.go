package component

// Abilities defines which optional player abilities are enabled.
type Abilities struct {
	WallSlide   bool `json:"wallSlide"`
	DoubleJump  bool `json:"doubleJump"`
	Dash        bool `json:"dash"`
	GroundPound bool `json:"groundPound"`
}

func AllAbilities() Abilities {
	return Abilities{WallSlide: true, DoubleJump: true, Dash: true, GroundPound: true}
}

var AbilitiesComponent = NewComponent[Abilities]()
