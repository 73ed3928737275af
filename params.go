// Package gemset generates parametric stone-setting geometry: a ring
// band, tapered prongs placed around a faceted gemstone, base
// structures joining the prongs and optional decorative claw clusters.
// A single Generate call is a pure function from DesignParameters to a
// designer scene (with the stone) and a production scene (without it).
package gemset

import (
	"errors"
	"fmt"

	"github.com/forma-cad/gemset/form3"
)

// ErrInvalidParameter tags all parameter validation failures so callers
// can distinguish user error from geometry trouble.
var ErrInvalidParameter = errors.New("invalid parameter")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidParameter}, args...)...)
}

// StoneShape identifies the gemstone cut.
type StoneShape string

const (
	Round    StoneShape = "round"
	Princess StoneShape = "princess"
	Radiant  StoneShape = "radiant"
	Oval     StoneShape = "oval"
)

// ParseStoneShape converts a shape name to a StoneShape.
func ParseStoneShape(s string) (StoneShape, error) {
	switch StoneShape(s) {
	case Round, Princess, Radiant, Oval:
		return StoneShape(s), nil
	}
	return "", invalidf("unsupported stone shape %q", s)
}

func (s StoneShape) form3Shape() form3.StoneShape {
	switch s {
	case Princess:
		return form3.StonePrincess
	case Radiant:
		return form3.StoneRadiant
	case Oval:
		return form3.StoneOval
	default:
		return form3.StoneRound
	}
}

// square reports whether the girdle outline has corners, which changes
// prong tip placement and stone orientation.
func (s StoneShape) square() bool { return s == Princess || s == Radiant }

// BaseStyle selects how prong bases are joined.
type BaseStyle string

const (
	BasesIndividual BaseStyle = "individual"
	BasesShared     BaseStyle = "shared"
	BasesGallery    BaseStyle = "gallery"
)

// ParseBaseStyle converts a style name to a BaseStyle.
func ParseBaseStyle(s string) (BaseStyle, error) {
	switch BaseStyle(s) {
	case BasesIndividual, BasesShared, BasesGallery:
		return BaseStyle(s), nil
	}
	return "", invalidf("unsupported prong base style %q", s)
}

func (s BaseStyle) form3Style() form3.BaseStyle {
	switch s {
	case BasesShared:
		return form3.BasesShared
	case BasesGallery:
		return form3.BasesGallery
	default:
		return form3.BasesIndividual
	}
}

// BaseType selects the structure under the setting.
type BaseType string

const (
	BaseRing    BaseType = "ring"    // full finger band
	BaseMinimal BaseType = "minimal" // small platform disc
	BaseNone    BaseType = "none"
)

// ParseBaseType converts a base type name to a BaseType.
func ParseBaseType(s string) (BaseType, error) {
	switch BaseType(s) {
	case BaseRing, BaseMinimal, BaseNone:
		return BaseType(s), nil
	}
	return "", invalidf("unsupported base type %q", s)
}

// RingProfile selects the band cross-section.
type RingProfile string

const (
	ProfileFlat    RingProfile = "flat"
	ProfileRounded RingProfile = "rounded"
)

// ParseRingProfile converts a profile name to a RingProfile.
func ParseRingProfile(s string) (RingProfile, error) {
	switch RingProfile(s) {
	case ProfileFlat, ProfileRounded:
		return RingProfile(s), nil
	}
	return "", invalidf("unsupported ring profile %q", s)
}

// ClawParams describes an optional decorative claw cluster on the band
// rim. Angles are radians, lengths millimeters.
type ClawParams struct {
	Count        int
	BaseAngle    float64
	SpreadDeg    float64
	Length       float64
	BaseDiameter float64
	TipDiameter  float64
	TiltZFactor  float64
}

// DebugOptions adds inspection geometry to the designer scene. It never
// affects production output.
type DebugOptions struct {
	// Markers adds coordinate axes, a ground plane and a sphere at
	// every prong anchor.
	Markers bool
	// SingleProng keeps only the first prong, which makes anchor
	// orientation problems easy to see.
	SingleProng bool
}

// DesignParameters is the complete description of one setting. All
// lengths are millimeters. The assembled scene puts the prong base
// plane at z=0, the band below it and the stone girdle at
// z=SettingHeight with the table toward +Z.
type DesignParameters struct {
	StoneShape StoneShape
	// Girdle extents of the stone.
	StoneLength float64
	StoneWidth  float64
	StoneDepth  float64

	ProngCount         int
	ProngBaseDiameter  float64
	ProngTopDiameter   float64
	SettingHeight      float64 // prong length from base plane to tip
	ProngBaseStyle     BaseStyle
	ProngBaseWidth     float64
	ProngBaseHeight    float64
	GalleryRadius      float64 // 0 → mean anchor radius
	ProngTaperSections int     // 0 → 36

	BaseType        BaseType
	RingOuterRadius float64
	RingInnerRadius float64
	RingThickness   float64
	RingProfile     RingProfile
	RingTubeRadius  float64 // 0 → derived from the radial gap

	Claws *ClawParams // nil → no claw clusters
}

// Validate reports the first invalid field. All failures wrap
// ErrInvalidParameter.
func (p DesignParameters) Validate() error {
	if _, err := ParseStoneShape(string(p.StoneShape)); err != nil {
		return err
	}
	if p.StoneLength <= 0 || p.StoneWidth <= 0 || p.StoneDepth <= 0 {
		return invalidf("stone dimensions must be positive, got %gx%gx%g",
			p.StoneLength, p.StoneWidth, p.StoneDepth)
	}
	if p.ProngCount < 2 {
		return invalidf("prong count must be at least 2, got %d", p.ProngCount)
	}
	if p.ProngBaseDiameter <= 0 || p.ProngTopDiameter <= 0 {
		return invalidf("prong diameters must be positive")
	}
	if p.SettingHeight <= 0 {
		return invalidf("setting height must be positive, got %g", p.SettingHeight)
	}
	if _, err := ParseBaseStyle(string(p.ProngBaseStyle)); err != nil {
		return err
	}
	if _, err := ParseBaseType(string(p.BaseType)); err != nil {
		return err
	}
	if p.BaseType == BaseRing {
		if p.RingInnerRadius <= 0 || p.RingOuterRadius <= p.RingInnerRadius {
			return invalidf("ring radii must satisfy outer > inner > 0, got outer=%g inner=%g",
				p.RingOuterRadius, p.RingInnerRadius)
		}
		if p.RingThickness <= 0 {
			return invalidf("ring thickness must be positive, got %g", p.RingThickness)
		}
		if _, err := ParseRingProfile(string(p.RingProfile)); err != nil {
			return err
		}
	}
	if c := p.Claws; c != nil {
		if c.Count <= 0 {
			return invalidf("claw count must be positive, got %d", c.Count)
		}
		if c.Length <= 0 || c.BaseDiameter <= 0 || c.TipDiameter <= 0 {
			return invalidf("claw dimensions must be positive")
		}
	}
	return nil
}

func (p DesignParameters) taperSections() int {
	if p.ProngTaperSections <= 0 {
		return 36
	}
	return p.ProngTaperSections
}
