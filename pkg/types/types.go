package types

// AspectMode selects the target orientation for output clips.
type AspectMode string

const (
	AspectModePortrait  AspectMode = "portrait"
	AspectModeLandscape AspectMode = "landscape"
	AspectModeOriginal  AspectMode = "original"
)

// AspectHandling selects how a source frame is fitted into the target frame.
type AspectHandling string

const (
	AspectHandlingPad     AspectHandling = "pad"
	AspectHandlingCrop    AspectHandling = "crop"
	AspectHandlingStretch AspectHandling = "stretch"
)

// ClipStatus is the outcome of one clip invocation.
type ClipStatus string

const (
	ClipStatusSuccess ClipStatus = "success"
	ClipStatusFailed  ClipStatus = "failed"
	ClipStatusSkipped ClipStatus = "skipped"
)

// CollisionPolicy decides what happens when an output file already exists.
type CollisionPolicy string

const (
	CollisionOverwrite CollisionPolicy = "overwrite"
	CollisionSkip      CollisionPolicy = "skip"
)
