package game

const (
	ErrorMissingPrototype = "scene is missing the %q prototype"
	ErrorNoCargo          = "scene has no cargo crates"
	ErrorNoWalkmesh       = "no walkmesh provided"
	ErrorNoScene          = "no scene provided"
	ErrorNoAudio          = "no audio provided"
	ErrorInvalidSettings  = "invalid settings: %s"
)
