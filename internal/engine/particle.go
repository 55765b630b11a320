package engine

// Kind discriminates the particle variants.
type Kind uint8

const (
	KindSnowflake Kind = iota
	KindRaindrop
	KindRocket
	KindSpark
)

func (k Kind) String() string {
	switch k {
	case KindSnowflake:
		return "snowflake"
	case KindRaindrop:
		return "raindrop"
	case KindRocket:
		return "rocket"
	case KindSpark:
		return "spark"
	}
	return "unknown"
}

// Particle is implemented only by the variants in this package.
type Particle interface {
	Kind() Kind
	Position() (x, y float64)
	isParticle()
}

// Snowflake drifts down with an accumulating sideways sway.
// Only X and Y change after creation.
type Snowflake struct {
	X, Y      float64
	VY        float64 // [0.5, 1.5]
	Size      float64 // radius, [1, 3]
	Opacity   float64 // [0.2, 0.8]
	Swing     float64 // sway phase, [0, 2]
	SwaySpeed float64 // [0.01, 0.06]
}

// Raindrop attributes all derive from Scale; heavier drops are faster,
// longer and more opaque.
type Raindrop struct {
	X, Y    float64
	Scale   float64 // [0, 1)
	VY      float64 // 6 + 8*Scale
	Length  float64 // 5 + 25*Scale
	Opacity float64 // 0.05 + 0.5*Scale
}

// Rocket climbs until gravity slows it near its apex, then detonates.
// TX and TY record the launch target; they do not steer the rocket.
type Rocket struct {
	X, Y   float64
	TX, TY float64
	VX, VY float64
	Hue    float64
}

// Spark is a fading fragment of a detonated rocket.
type Spark struct {
	X, Y     float64
	VX, VY   float64
	Gravity  float64
	Friction float64
	Opacity  float64
	Decay    float64
	Hue      float64
}

func (*Snowflake) Kind() Kind { return KindSnowflake }
func (*Raindrop) Kind() Kind  { return KindRaindrop }
func (*Rocket) Kind() Kind    { return KindRocket }
func (*Spark) Kind() Kind     { return KindSpark }

func (p *Snowflake) Position() (float64, float64) { return p.X, p.Y }
func (p *Raindrop) Position() (float64, float64)  { return p.X, p.Y }
func (p *Rocket) Position() (float64, float64)    { return p.X, p.Y }
func (p *Spark) Position() (float64, float64)     { return p.X, p.Y }

func (*Snowflake) isParticle() {}
func (*Raindrop) isParticle()  {}
func (*Rocket) isParticle()    {}
func (*Spark) isParticle()     {}
