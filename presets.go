package gemset

import "sort"

var presets = map[string]DesignParameters{
	// Traditional 4-prong round solitaire.
	"solitaire": {
		StoneShape:        Round,
		StoneLength:       6.5,
		StoneWidth:        6.5,
		StoneDepth:        4.0,
		ProngCount:        4,
		ProngBaseDiameter: 0.8,
		ProngTopDiameter:  0.5,
		SettingHeight:     3.5,
		ProngBaseStyle:    BasesGallery,
		ProngBaseWidth:    1.0,
		ProngBaseHeight:   0.8,
		BaseType:          BaseRing,
		RingOuterRadius:   8.5,
		RingInnerRadius:   5.0,
		RingThickness:     2.0,
		RingProfile:       ProfileRounded,
	},
	// 6-prong setting for halo rings.
	"halo": {
		StoneShape:        Round,
		StoneLength:       5.0,
		StoneWidth:        5.0,
		StoneDepth:        3.5,
		ProngCount:        6,
		ProngBaseDiameter: 0.6,
		ProngTopDiameter:  0.3,
		SettingHeight:     2.8,
		ProngBaseStyle:    BasesIndividual,
		ProngBaseWidth:    0.8,
		ProngBaseHeight:   0.6,
		BaseType:          BaseMinimal,
	},
	// Art-deco inspired princess cut.
	"vintage": {
		StoneShape:        Princess,
		StoneLength:       6.0,
		StoneWidth:        6.0,
		StoneDepth:        4.2,
		ProngCount:        4,
		ProngBaseDiameter: 1.0,
		ProngTopDiameter:  0.6,
		SettingHeight:     4.0,
		ProngBaseStyle:    BasesShared,
		ProngBaseWidth:    1.4,
		ProngBaseHeight:   1.2,
		BaseType:          BaseRing,
		RingOuterRadius:   9.0,
		RingInnerRadius:   5.2,
		RingThickness:     2.5,
		RingProfile:       ProfileFlat,
	},
}

// Preset returns a named parameter set ready for Generate.
func Preset(name string) (DesignParameters, error) {
	p, ok := presets[name]
	if !ok {
		return DesignParameters{}, invalidf("unknown preset %q", name)
	}
	return p, nil
}

// PresetNames lists available presets in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
