package profile

// Original leaves the source frame untouched; clips can be extracted with
// stream copy when no other filter applies.
type Original struct{}

func init() {
	Register(&Original{})
}

func (p *Original) GetName() string {
	return "original"
}

func (p *Original) GetTargetDimensions() (width, height int) {
	return 0, 0
}

func (p *Original) Reformats() bool {
	return false
}
