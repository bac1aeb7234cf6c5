package profile

type Portrait struct{}

func init() {
	Register(&Portrait{})
}

func (p *Portrait) GetName() string {
	return "portrait"
}

func (p *Portrait) GetTargetDimensions() (width, height int) {
	return 1080, 1920
}

func (p *Portrait) Reformats() bool {
	return true
}
