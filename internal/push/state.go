package push

// State is a stage of the push pipeline.
type State string

const (
	StateCheckingEnvironment State = "checking-environment"
	StateRegistering         State = "registering"
	StateBuilding            State = "building"
	StateReusing             State = "reusing"
	StateExtractingMetadata  State = "extracting-metadata"
	StateAssembling          State = "assembling"
	StatePublishing          State = "publishing"
	StateReporting           State = "reporting"
)
