// Generate command: parameters to GLB files.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/forma-cad/gemset"
	"github.com/forma-cad/gemset/csg"
)

var (
	genPreset      string
	genDesigner    string
	genProduction  string
	genRingSize    float64
	genMarkers     bool
	genSingleProng bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate designer and production GLB scenes",
	Long: `Generate builds the setting geometry and writes the designer scene
(with the stone) and optionally the production scene (stone-less,
unioned for manufacturing).

Parameters start from the named preset, then config file values, then
flags, most specific last. Example:

  gemset generate --preset solitaire --ring-size 8 -o ring.glb --production cast.glb`,
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringVar(&genPreset, "preset", "solitaire", "base parameter preset")
	f.StringVarP(&genDesigner, "out", "o", "setting_designer.glb", "designer scene output path")
	f.StringVar(&genProduction, "production", "", "production scene output path (empty skips it)")
	f.Float64Var(&genRingSize, "ring-size", 0, "US ring size; overrides ring inner radius")
	f.BoolVar(&genMarkers, "debug-markers", false, "add axis, ground and anchor markers to the designer scene")
	f.BoolVar(&genSingleProng, "debug-single-prong", false, "keep only the first prong")

	f.String("stone-shape", "", "stone shape (round, princess, radiant, oval)")
	f.Float64("stone-length", 0, "stone girdle length, mm")
	f.Float64("stone-width", 0, "stone girdle width, mm")
	f.Float64("stone-depth", 0, "stone depth, mm")
	f.Int("prongs", 0, "prong count")
	f.Float64("prong-base", 0, "prong base diameter, mm")
	f.Float64("prong-top", 0, "prong tip diameter, mm")
	f.Float64("setting-height", 0, "prong length from base plane, mm")
	f.String("base-style", "", "prong base style (individual, shared, gallery)")
	f.Float64("base-width", 0, "prong base width, mm")
	f.Float64("base-height", 0, "prong base height, mm")
	f.String("base-type", "", "base type (ring, minimal, none)")
	f.Float64("ring-outer", 0, "ring outer radius, mm")
	f.Float64("ring-inner", 0, "ring inner radius, mm")
	f.Float64("ring-thickness", 0, "ring band thickness, mm")
	f.String("ring-profile", "", "ring profile (flat, rounded)")
	f.Int("csg-cells", 0, "marching cubes resolution for boolean operations")

	_ = viper.BindPFlags(f)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	p, err := gemset.Preset(genPreset)
	if err != nil {
		return err
	}
	applyOverrides(&p)
	if genRingSize != 0 {
		d, err := gemset.USRingSize(genRingSize)
		if err != nil {
			return err
		}
		p.RingInnerRadius = d / 2
	}

	gen := gemset.New(csg.NewSDFEngine(viper.GetInt("csg-cells")), log)
	debug := gemset.DebugOptions{Markers: genMarkers, SingleProng: genSingleProng}
	if err := gen.GenerateFiles(p, debug, genDesigner, genProduction); err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	return nil
}

// applyOverrides copies any explicitly set flag or config value over
// the preset. Zero values mean "keep the preset".
func applyOverrides(p *gemset.DesignParameters) {
	if s := viper.GetString("stone-shape"); s != "" {
		p.StoneShape = gemset.StoneShape(s)
	}
	setF := func(key string, dst *float64) {
		if v := viper.GetFloat64(key); v != 0 {
			*dst = v
		}
	}
	setF("stone-length", &p.StoneLength)
	setF("stone-width", &p.StoneWidth)
	setF("stone-depth", &p.StoneDepth)
	if n := viper.GetInt("prongs"); n != 0 {
		p.ProngCount = n
	}
	setF("prong-base", &p.ProngBaseDiameter)
	setF("prong-top", &p.ProngTopDiameter)
	setF("setting-height", &p.SettingHeight)
	if s := viper.GetString("base-style"); s != "" {
		p.ProngBaseStyle = gemset.BaseStyle(s)
	}
	setF("base-width", &p.ProngBaseWidth)
	setF("base-height", &p.ProngBaseHeight)
	if s := viper.GetString("base-type"); s != "" {
		p.BaseType = gemset.BaseType(s)
	}
	setF("ring-outer", &p.RingOuterRadius)
	setF("ring-inner", &p.RingInnerRadius)
	setF("ring-thickness", &p.RingThickness)
	if s := viper.GetString("ring-profile"); s != "" {
		p.RingProfile = gemset.RingProfile(s)
	}
}
