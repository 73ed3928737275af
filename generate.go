package gemset

import (
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/forma-cad/gemset/csg"
	"github.com/forma-cad/gemset/form3"
	"github.com/forma-cad/gemset/glb"
	"github.com/forma-cad/gemset/internal/d3"
	"github.com/forma-cad/gemset/mesh"
	"github.com/forma-cad/gemset/scene"
)

const (
	// productionProngExtra is the fixed extra prong length given to the
	// production build so tips can be burnished over the stone.
	productionProngExtra = 1.5
	// productionProngGapFactor extends production prongs proportionally
	// to the root-to-stone gap so tips clear the girdle at any scale.
	productionProngGapFactor = 0.1
	// productionBaseScale thickens production bases for casting.
	productionBaseScale = 1.1

	minimalBaseThickness = 0.6
	weldTolerance        = 1e-5
	baseSections         = 32
	// bandPenetration sinks the band top below the prong base plane so
	// unions see overlapping volumes rather than a shared plane.
	bandPenetration = 0.05
)

// Generator builds designer and production scenes from parameters. The
// zero value works: booleans run on a default signed-distance engine
// and logging is discarded.
type Generator struct {
	Engine csg.Engine
	Log    *zap.Logger
}

// New returns a Generator with the given boolean engine and logger.
// Either may be nil.
func New(engine csg.Engine, log *zap.Logger) *Generator {
	return &Generator{Engine: engine, Log: log}
}

func (g *Generator) engine() csg.Engine {
	if g.Engine == nil {
		return csg.NewSDFEngine(0)
	}
	return g.Engine
}

func (g *Generator) log() *zap.Logger {
	if g.Log == nil {
		return zap.NewNop()
	}
	return g.Log
}

// Generate builds both scenes for one parameter set. The designer
// scene keeps every part separate and includes the tinted stone; the
// production scene is a single stone-less solid, unioned when the
// boolean engine succeeds and concatenated with a repair pass when it
// does not. Only parameter validation can fail; geometry trouble
// degrades to fallbacks.
func (g *Generator) Generate(p DesignParameters, debug DebugOptions) (designer, production scene.Scene, err error) {
	if err := p.Validate(); err != nil {
		return scene.Scene{}, scene.Scene{}, err
	}
	log := g.log()
	for _, w := range ClearanceWarnings(p) {
		log.Warn("clearance", zap.String("warning", w))
	}

	anchors := ProngAnchors(p)
	// Debug options shape only the designer scene; production always
	// keeps the full prong set.
	designerAnchors := anchors
	if debug.SingleProng && len(anchors) > 1 {
		designerAnchors = anchors[:1]
	}

	designer = g.assembleDesigner(p, designerAnchors, debug)
	production = g.assembleProduction(p, anchors)
	log.Info("generated scenes",
		zap.Int("designerParts", len(designer.Parts)),
		zap.Int("designerTriangles", designer.TriangleCount()),
		zap.Int("productionTriangles", production.TriangleCount()))
	return designer, production, nil
}

func (g *Generator) assembleDesigner(p DesignParameters, anchors []ProngAnchor, debug DebugOptions) scene.Scene {
	var s scene.Scene

	s.Add("Ring", g.baseMesh(p, 1), scene.MetalTint)
	s.Add(basePartName(p.ProngBaseStyle), g.prongBases(p, anchors, p.ProngBaseHeight), scene.MetalTint)
	for i, a := range anchors {
		s.Add(fmt.Sprintf("Prong_%d", i), prongMesh(a, p, 0), scene.MetalTint)
	}
	s.Add("Claws", g.clawClusters(p, 1), scene.MetalTint)
	s.Add("Stone", stoneMesh(p), scene.StoneTint)

	if debug.Markers {
		extent := p.RingOuterRadius
		if extent <= 0 {
			extent = math.Max(p.StoneLength, p.StoneWidth)
		}
		s.Add("Debug_Axes", form3.AxisMarkers(extent*1.5), scene.DebugTint)
		s.Add("Debug_Ground", form3.GroundPlane(extent*1.5), scene.DebugTint)
		for i, a := range anchors {
			s.Add(fmt.Sprintf("Debug_Anchor_%d", i),
				form3.MarkerSphere(a.End, 0.2), scene.DebugTint)
		}
	}
	return s
}

// assembleProduction rebuilds the metal parts from scratch rather than
// stretching designer meshes: prongs longer, bases thicker, no stone.
func (g *Generator) assembleProduction(p DesignParameters, anchors []ProngAnchor) scene.Scene {
	parts := []mesh.Mesh{
		g.baseMesh(p, productionBaseScale),
		g.prongBases(p, anchors, p.ProngBaseHeight*productionBaseScale),
		g.clawClusters(p, productionBaseScale),
	}
	for _, a := range anchors {
		gap := math.Hypot(a.Start.X, a.Start.Y) - p.girdleRadius(a.Angle)
		extra := productionProngExtra + productionProngGapFactor*math.Max(gap, 0)
		parts = append(parts, prongMesh(a, p, extra))
	}
	solid := make([]mesh.Mesh, 0, len(parts))
	for _, m := range parts {
		if !m.IsEmpty() {
			solid = append(solid, m)
		}
	}

	var s scene.Scene
	if len(solid) == 0 {
		return s
	}
	combined, err := g.engine().Union(solid...)
	if err != nil {
		g.log().Warn("production union failed, concatenating", zap.Error(err))
		combined = mesh.Concat(solid...)
		var watertight bool
		combined, watertight = combined.Repair(weldTolerance)
		if !watertight {
			g.log().Warn("production mesh not watertight after repair")
		}
	}
	s.Add("Setting", combined, scene.MetalTint)
	return s
}

// baseMesh builds the structure under the prongs: a finger band, a
// small platform, or nothing. thickScale fattens it for production.
func (g *Generator) baseMesh(p DesignParameters, thickScale float64) mesh.Mesh {
	switch p.BaseType {
	case BaseRing:
		return form3.RingBand(form3.RingBandOpts{
			OuterRadius: p.RingOuterRadius,
			InnerRadius: p.RingInnerRadius,
			Height:      p.RingThickness * thickScale,
			Penetration: bandPenetration,
			Profile:     bandProfile(p.RingProfile),
			TubeRadius:  p.RingTubeRadius,
			Engine:      g.engine(),
		})
	case BaseMinimal:
		radius := math.Max(p.StoneLength, p.StoneWidth)/2 + 1.0
		h := minimalBaseThickness * thickScale
		return form3.Cylinder(radius, h, baseSections).Translate(r3.Vec{Z: -h})
	default:
		return mesh.Mesh{}
	}
}

func (g *Generator) prongBases(p DesignParameters, anchors []ProngAnchor, height float64) mesh.Mesh {
	roots := make([]r3.Vec, len(anchors))
	for i, a := range anchors {
		roots[i] = a.Start
	}
	if p.ProngBaseStyle == BasesGallery {
		radius := p.GalleryRadius
		if radius <= 0 {
			radius = meanRadius(roots)
		}
		return form3.GalleryRail(form3.GalleryRailOpts{
			Radius:    radius,
			Thickness: p.ProngBaseWidth,
			Height:    height,
			Sections:  baseSections * 2,
			Engine:    g.engine(),
		})
	}
	return form3.ProngBase(p.ProngBaseStyle.form3Style(), roots,
		p.ProngBaseWidth, height, baseSections, g.engine())
}

func (g *Generator) clawClusters(p DesignParameters, scale float64) mesh.Mesh {
	c := p.Claws
	if c == nil {
		return mesh.Mesh{}
	}
	radius := p.RingOuterRadius
	if radius <= 0 {
		radius = math.Max(p.StoneLength, p.StoneWidth)/2 + 1.0
	}
	return form3.ClawCluster(form3.ClawClusterOpts{
		Count:        c.Count,
		BaseAngle:    c.BaseAngle,
		Radius:       radius,
		SpreadDeg:    c.SpreadDeg,
		Length:       c.Length * scale,
		BaseDiameter: c.BaseDiameter,
		TipDiameter:  c.TipDiameter,
		TiltZFactor:  c.TiltZFactor,
	})
}

// prongMesh builds one tapered prong as a fresh frustum spanning the
// anchor plus any extra length past the tip.
func prongMesh(a ProngAnchor, p DesignParameters, extra float64) mesh.Mesh {
	length := a.Length() + extra
	fr := form3.Frustum(p.ProngBaseDiameter/2, p.ProngTopDiameter/2, length, p.taperSections())
	fr = fr.Rotate(d3.RotateAlign(r3.Vec{Z: 1}, a.Direction()))
	return fr.Translate(a.Start)
}

// stoneMesh builds the stone in scene position: girdle at
// z=SettingHeight, square cuts rotated so corners meet the prongs.
func stoneMesh(p DesignParameters) mesh.Mesh {
	m, ok := form3.Gemstone(p.StoneShape.form3Shape(), p.StoneLength, p.StoneWidth, p.StoneDepth)
	if !ok {
		return mesh.Mesh{}
	}
	if rot := p.stoneRotation(); rot != 0 {
		m = m.Rotate(d3.RotateZ(rot))
	}
	return m.Translate(r3.Vec{Z: p.SettingHeight})
}

func meanRadius(points []r3.Vec) float64 {
	if len(points) == 0 {
		return 0
	}
	var sum float64
	for _, pt := range points {
		sum += math.Hypot(pt.X, pt.Y)
	}
	return sum / float64(len(points))
}

func basePartName(style BaseStyle) string {
	if style == BasesGallery {
		return "Gallery"
	}
	return "Bases"
}

func bandProfile(p RingProfile) form3.BandProfile {
	if p == ProfileRounded {
		return form3.BandRounded
	}
	return form3.BandFlat
}

// GenerateFiles runs Generate and exports the scenes as GLB files.
// productionPath may be empty to skip the production export.
func (g *Generator) GenerateFiles(p DesignParameters, debug DebugOptions, designerPath, productionPath string) error {
	designer, production, err := g.Generate(p, debug)
	if err != nil {
		return err
	}
	if err := glb.WriteFile(designerPath, designer); err != nil {
		return fmt.Errorf("write designer scene: %w", err)
	}
	g.log().Info("wrote designer scene", zap.String("path", designerPath))
	if productionPath == "" {
		return nil
	}
	if production.IsEmpty() {
		g.log().Warn("production scene empty, skipping export")
		return nil
	}
	if err := glb.WriteFile(productionPath, production); err != nil {
		return fmt.Errorf("write production scene: %w", err)
	}
	g.log().Info("wrote production scene", zap.String("path", productionPath))
	return nil
}
