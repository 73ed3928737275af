package form3

import (
	"math"

	"github.com/forma-cad/gemset/internal/d3"
	"github.com/forma-cad/gemset/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// ClawClusterOpts parametrizes ClawCluster.
type ClawClusterOpts struct {
	Count     int     // claws in the cluster
	BaseAngle float64 // bearing of the cluster center, radians
	Radius    float64 // root distance from the z axis
	// SpreadDeg is the angular fan of the cluster in degrees. Ignored
	// for a single claw, which sits exactly on BaseAngle.
	SpreadDeg    float64
	Length       float64
	BaseDiameter float64
	TipDiameter  float64
	// TiltZFactor is the vertical component mixed into the inward claw
	// direction before normalization. Zero lays the claw flat.
	TiltZFactor float64
	Sections    int
}

// ClawCluster builds a fan of tapered claws rooted at z=0 on a circle
// of the given radius, each leaning inward and upward so the tips curl
// over a stone seated at the origin.
func ClawCluster(o ClawClusterOpts) mesh.Mesh {
	if o.Count <= 0 {
		return mesh.Mesh{}
	}
	if o.Sections <= 0 {
		o.Sections = 24
	}
	spread := o.SpreadDeg * math.Pi / 180
	parts := make([]mesh.Mesh, 0, o.Count)
	for i := 0; i < o.Count; i++ {
		angle := o.BaseAngle
		if o.Count > 1 {
			angle += -spread/2 + spread*float64(i)/float64(o.Count-1)
		}
		parts = append(parts, claw(o, angle))
	}
	return mesh.Concat(parts...)
}

func claw(o ClawClusterOpts, angle float64) mesh.Mesh {
	sin, cos := math.Sincos(angle)
	root := r3.Vec{X: o.Radius * cos, Y: o.Radius * sin}
	dir := r3.Unit(r3.Vec{X: -cos, Y: -sin, Z: o.TiltZFactor})
	c := Frustum(o.BaseDiameter/2, o.TipDiameter/2, o.Length, o.Sections)
	c = c.Rotate(d3.RotateAlign(r3.Vec{Z: 1}, dir))
	return c.Translate(root)
}
