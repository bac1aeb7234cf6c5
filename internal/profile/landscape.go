package profile

type Landscape struct{}

func init() {
	Register(&Landscape{})
}

func (p *Landscape) GetName() string {
	return "landscape"
}

func (p *Landscape) GetTargetDimensions() (width, height int) {
	return 1920, 1080
}

func (p *Landscape) Reformats() bool {
	return true
}
