package options

// PlaygroundOptions collects the command-line configuration for the playground.
type PlaygroundOptions struct {
	Width       *int
	Height      *int
	ShaderFile  *string // Fragment source file watched for draft edits; empty selects the built-in default program.
	Feedback    *bool   // Wire a previous-frame texture into the quad material.
	AutoCompile *bool   // Compile automatically when the watched draft file changes.
	ExportDir   *string

	// Recording options
	Record     *bool
	Duration   *float64
	FPS        *int
	Codec      *string
	OutputFile *string
	FFMPEGPath *string
}
