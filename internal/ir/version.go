package ir

// Version constants for the document schema and engine.
const (
	// IRVersion is the diagram and run document schema version.
	IRVersion = "1"

	// EngineVersion is the stabdecomp engine version.
	EngineVersion = "0.1.0"
)
