package game

const (
	// DefaultBotName is the identity of the adaptive computer opponent
	DefaultBotName = "mafaldo"

	// UniformProbability is the chance of each counter move against an unknown opponent
	UniformProbability = 1.0 / 3
)
