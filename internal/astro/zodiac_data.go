package astro

// PortfolioSections lists the section ids bound to clickable stars, in
// brightness rank order.
var PortfolioSections = []string{"about", "skills", "experience", "projects", "gallery", "guestbook"}

// rawStar is the authored form of a star, before sections are assigned.
type rawStar struct {
	id   string
	name string
	ra   float64
	dec  float64
	mag  float64
}

func buildStars(raw []rawStar) []Star {
	stars := make([]Star, len(raw))
	for i, r := range raw {
		stars[i] = Star{ID: r.id, Name: r.name, RAdeg: r.ra, DecDeg: r.dec, Mag: r.mag}
	}
	return AssignSections(stars, PortfolioSections)
}

var zodiacCatalog = NewCatalog(zodiacConstellations())

// ZodiacCatalog returns the catalog of the 12 zodiac constellations.
// Coordinates are J2000 epoch.
func ZodiacCatalog() *Catalog {
	return zodiacCatalog
}

func zodiacConstellations() []Constellation {
	return []Constellation{
		{
			ID: "aries", Name: "Aries", Symbol: "♈", DateRange: "Mar 21 – Apr 19",
			Stars: buildStars([]rawStar{
				{"hamal", "Hamal", 31.793, 23.463, 2.00},
				{"sheratan", "Sheratan", 28.660, 20.808, 2.64},
				{"mesarthim", "Mesarthim", 28.383, 19.294, 3.86},
				{"botein", "Botein", 44.107, 19.726, 4.35},
				{"41ari", "41 Ari", 47.373, 27.261, 3.63},
				{"epsilon", "ε Ari", 43.564, 21.008, 4.63},
				{"pi_ari", "π Ari", 46.197, 17.332, 5.22},
			}),
			Edges: []Edge{
				{"mesarthim", "sheratan"},
				{"sheratan", "hamal"},
				{"hamal", "botein"},
				{"botein", "41ari"},
			},
		},
		{
			ID: "taurus", Name: "Taurus", Symbol: "♉", DateRange: "Apr 20 – May 20",
			Stars: buildStars([]rawStar{
				{"aldebaran", "Aldebaran", 68.980, 16.509, 0.85},
				{"elnath", "Elnath", 81.573, 28.608, 1.65},
				{"alcyone", "Alcyone", 56.871, 24.105, 2.87},
				{"ain", "Ain", 67.154, 19.180, 3.53},
				{"hyadum1", "Hyadum I", 65.733, 15.627, 3.65},
				{"hyadum2", "Hyadum II", 64.948, 17.543, 3.77},
				{"tianguan", "Tianguan", 84.411, 21.143, 3.00},
				{"alheka", "Alheka", 82.061, 20.571, 3.00},
			}),
			Edges: []Edge{
				{"alcyone", "ain"},
				{"ain", "aldebaran"},
				{"aldebaran", "hyadum1"},
				{"aldebaran", "hyadum2"},
				{"aldebaran", "elnath"},
				{"elnath", "tianguan"},
				{"tianguan", "alheka"},
			},
		},
		{
			ID: "gemini", Name: "Gemini", Symbol: "♊", DateRange: "May 21 – Jun 20",
			Stars: buildStars([]rawStar{
				{"pollux", "Pollux", 116.329, 28.026, 1.14},
				{"castor", "Castor", 113.649, 31.888, 1.58},
				{"alhena", "Alhena", 99.428, 16.399, 1.93},
				{"tejat", "Tejat", 95.740, 22.513, 2.86},
				{"mebsuda", "Mebsuda", 100.983, 25.131, 3.06},
				{"propus", "Propus", 93.719, 22.506, 3.28},
				{"alzirr", "Alzirr", 96.757, 12.896, 3.35},
				{"wasat", "Wasat", 110.031, 21.982, 3.53},
				{"kappa", "κ Gem", 116.112, 24.398, 3.57},
				{"iota", "ι Gem", 111.163, 27.796, 3.79},
			}),
			Edges: []Edge{
				{"castor", "pollux"},
				{"castor", "mebsuda"},
				{"mebsuda", "tejat"},
				{"tejat", "propus"},
				{"propus", "alzirr"},
				{"pollux", "kappa"},
				{"kappa", "wasat"},
				{"wasat", "alhena"},
				{"castor", "iota"},
			},
		},
		{
			ID: "cancer", Name: "Cancer", Symbol: "♋", DateRange: "Jun 21 – Jul 22",
			Stars: buildStars([]rawStar{
				{"tarf", "Tarf", 124.129, 9.186, 3.52},
				{"asellus_b", "Asellus B", 130.821, 21.469, 3.94},
				{"asellus_a", "Asellus A", 130.022, 18.154, 4.26},
				{"acubens", "Acubens", 134.621, 11.858, 4.26},
				{"iota_cnc", "ι Cnc", 131.171, 28.761, 4.02},
				{"xi_cnc", "ξ Cnc", 128.938, 22.045, 5.14},
				{"chi_cnc", "χ Cnc", 128.095, 26.899, 5.14},
			}),
			Edges: []Edge{
				{"tarf", "asellus_a"},
				{"asellus_a", "asellus_b"},
				{"asellus_b", "iota_cnc"},
				{"asellus_a", "acubens"},
			},
		},
		{
			ID: "leo", Name: "Leo", Symbol: "♌", DateRange: "Jul 23 – Aug 22",
			Stars: buildStars([]rawStar{
				{"regulus", "Regulus", 152.093, 11.967, 1.35},
				{"denebola", "Denebola", 177.265, 14.572, 2.14},
				{"algieba", "Algieba", 154.993, 19.842, 2.28},
				{"zosma", "Zosma", 168.527, 20.524, 2.56},
				{"epsilon", "Ras Elased", 146.463, 23.774, 2.98},
				{"adhafera", "Adhafera", 154.172, 23.417, 3.44},
				{"mu_leo", "Rasalas", 148.191, 26.007, 3.88},
				{"chertan", "Chertan", 168.560, 15.430, 3.34},
				{"eta_leo", "η Leo", 151.833, 16.762, 3.44},
			}),
			Edges: []Edge{
				{"mu_leo", "epsilon"},
				{"epsilon", "adhafera"},
				{"adhafera", "algieba"},
				{"algieba", "eta_leo"},
				{"eta_leo", "regulus"},
				{"algieba", "zosma"},
				{"zosma", "denebola"},
				{"zosma", "chertan"},
			},
		},
		{
			ID: "virgo", Name: "Virgo", Symbol: "♍", DateRange: "Aug 23 – Sep 22",
			Stars: buildStars([]rawStar{
				{"spica", "Spica", 201.298, -11.161, 0.97},
				{"porrima", "Porrima", 190.415, -1.449, 2.74},
				{"vindemiatrix", "Vindemiatrix", 195.544, 10.959, 2.83},
				{"heze", "Heze", 203.673, -0.596, 3.37},
				{"auva", "Auva", 193.901, 3.397, 3.38},
				{"zavijava", "Zavijava", 177.674, 1.765, 3.61},
				{"syrma", "Syrma", 214.002, -6.001, 4.08},
				{"iota_vir", "ι Vir", 208.671, -5.990, 4.08},
				{"mu_vir", "μ Vir", 221.557, -5.658, 3.87},
			}),
			Edges: []Edge{
				{"zavijava", "porrima"},
				{"porrima", "auva"},
				{"auva", "vindemiatrix"},
				{"auva", "spica"},
				{"spica", "heze"},
				{"heze", "iota_vir"},
				{"iota_vir", "syrma"},
				{"syrma", "mu_vir"},
			},
		},
		{
			ID: "libra", Name: "Libra", Symbol: "♎", DateRange: "Sep 23 – Oct 22",
			Stars: buildStars([]rawStar{
				{"zuben_s", "Zubeneschamali", 229.252, -9.383, 2.61},
				{"zuben_e", "Zubenelgenubi", 222.719, -16.042, 2.75},
				{"brachium", "Brachium", 233.882, -25.282, 3.29},
				{"zuben_h", "Zubenelhakrabi", 237.453, -29.778, 3.91},
				{"theta_lib", "θ Lib", 226.017, -16.730, 4.15},
				{"upsilon", "υ Lib", 231.216, -28.135, 3.60},
				{"tau_lib", "τ Lib", 232.967, -29.778, 3.66},
			}),
			Edges: []Edge{
				{"zuben_e", "zuben_s"},
				{"zuben_e", "theta_lib"},
				{"zuben_e", "brachium"},
				{"brachium", "upsilon"},
				{"upsilon", "tau_lib"},
				{"tau_lib", "zuben_h"},
			},
		},
		{
			ID: "scorpius", Name: "Scorpius", Symbol: "♏", DateRange: "Oct 23 – Nov 21",
			Stars: buildStars([]rawStar{
				{"antares", "Antares", 247.352, -26.432, 1.06},
				{"shaula", "Shaula", 263.402, -37.103, 1.62},
				{"sargas", "Sargas", 264.330, -42.997, 1.86},
				{"dschubba", "Dschubba", 240.083, -22.622, 2.29},
				{"acrab", "Acrab", 241.359, -19.806, 2.62},
				{"larawag", "Larawag", 252.541, -34.293, 2.69},
				{"lesath", "Lesath", 263.651, -37.296, 2.69},
				{"girtab", "Girtab", 260.920, -43.239, 2.39},
				{"iota_sco", "ι Sco", 261.325, -40.127, 3.03},
				{"xamidimura", "Xamidimura", 248.971, -34.293, 3.01},
				{"jabbah", "Jabbah", 241.163, -19.461, 4.00},
				{"pi_sco", "π Sco", 239.713, -26.114, 2.89},
				{"grafias", "Grafias", 244.580, -28.216, 4.50},
			}),
			Edges: []Edge{
				{"acrab", "dschubba"},
				{"dschubba", "pi_sco"},
				{"pi_sco", "antares"},
				{"antares", "larawag"},
				{"larawag", "xamidimura"},
				{"xamidimura", "iota_sco"},
				{"iota_sco", "girtab"},
				{"girtab", "sargas"},
				{"sargas", "lesath"},
				{"lesath", "shaula"},
			},
		},
		{
			ID: "sagittarius", Name: "Sagittarius", Symbol: "♐", DateRange: "Nov 22 – Dec 21",
			Stars: buildStars([]rawStar{
				{"kaus_a", "Kaus Australis", 276.043, -34.384, 1.79},
				{"nunki", "Nunki", 283.816, -26.296, 2.05},
				{"ascella", "Ascella", 285.653, -29.880, 2.59},
				{"kaus_m", "Kaus Media", 275.249, -29.828, 2.70},
				{"kaus_b", "Kaus Borealis", 274.407, -25.421, 2.81},
				{"albaldah", "Albaldah", 290.972, -21.023, 2.88},
				{"alnasl", "Alnasl", 271.452, -30.424, 2.98},
				{"phi_sgr", "φ Sgr", 281.641, -26.990, 3.17},
				{"tau_sgr", "τ Sgr", 287.441, -27.670, 3.32},
				{"delta_sgr", "δ Sgr", 275.249, -29.873, 2.71},
				{"sigma_sgr", "σ Sgr", 278.676, -26.991, 2.05},
				{"lambda_sgr", "λ Sgr", 276.992, -25.421, 2.82},
			}),
			Edges: []Edge{
				{"alnasl", "kaus_m"},
				{"kaus_m", "kaus_a"},
				{"kaus_a", "ascella"},
				{"ascella", "nunki"},
				{"kaus_m", "kaus_b"},
				{"kaus_b", "phi_sgr"},
				{"phi_sgr", "nunki"},
				{"nunki", "tau_sgr"},
				{"tau_sgr", "albaldah"},
			},
		},
		{
			ID: "capricornus", Name: "Capricornus", Symbol: "♑", DateRange: "Dec 22 – Jan 19",
			Stars: buildStars([]rawStar{
				{"deneb_a", "Deneb Algedi", 326.760, -16.127, 2.85},
				{"dabih", "Dabih", 305.253, -14.781, 3.05},
				{"algedi", "Algedi", 304.513, -12.545, 3.57},
				{"nashira", "Nashira", 325.023, -16.662, 3.69},
				{"zeta_cap", "ζ Cap", 321.667, -22.411, 3.74},
				{"theta_cap", "θ Cap", 316.678, -17.233, 4.07},
				{"iota_cap", "ι Cap", 318.797, -16.834, 4.28},
			}),
			Edges: []Edge{
				{"algedi", "dabih"},
				{"dabih", "theta_cap"},
				{"theta_cap", "iota_cap"},
				{"iota_cap", "nashira"},
				{"nashira", "deneb_a"},
				{"deneb_a", "zeta_cap"},
				{"zeta_cap", "theta_cap"},
			},
		},
		{
			ID: "aquarius", Name: "Aquarius", Symbol: "♒", DateRange: "Jan 20 – Feb 18",
			Stars: buildStars([]rawStar{
				{"sadalsuud", "Sadalsuud", 322.889, -5.571, 2.87},
				{"sadalmelik", "Sadalmelik", 331.446, -0.320, 2.96},
				{"skat", "Skat", 340.654, -15.824, 3.27},
				{"eta_aqr", "η Aqr", 331.105, -1.387, 4.02},
				{"sadachbia", "Sadachbia", 330.950, -1.449, 3.86},
				{"zeta_aqr", "ζ Aqr", 336.411, -0.020, 3.65},
				{"epsilon_aqr", "ε Aqr", 339.284, -9.495, 3.77},
				{"delta_aqr", "δ Aqr", 340.654, -15.824, 3.27},
				{"tau2_aqr", "τ² Aqr", 334.208, -13.592, 4.01},
				{"lambda_aqr", "λ Aqr", 338.376, -7.726, 3.72},
			}),
			Edges: []Edge{
				{"sadalsuud", "sadalmelik"},
				{"sadalmelik", "sadachbia"},
				{"sadachbia", "zeta_aqr"},
				{"zeta_aqr", "eta_aqr"},
				{"zeta_aqr", "epsilon_aqr"},
				{"epsilon_aqr", "lambda_aqr"},
				{"lambda_aqr", "skat"},
				{"skat", "delta_aqr"},
				{"delta_aqr", "tau2_aqr"},
			},
		},
		{
			// Pisces straddles RA 0/360; positions are projected without
			// unwrapping, so the two fish land on opposite sides.
			ID: "pisces", Name: "Pisces", Symbol: "♓", DateRange: "Feb 19 – Mar 20",
			Stars: buildStars([]rawStar{
				{"eta_psc", "Kullat Nunu", 22.871, 15.346, 3.62},
				{"gamma_psc", "γ Psc", 355.520, 3.282, 3.69},
				{"alpha_psc", "Alrescha", 30.512, 2.764, 3.82},
				{"omega_psc", "ω Psc", 359.445, 6.863, 4.01},
				{"iota_psc", "ι Psc", 23.953, 5.626, 4.13},
				{"delta_psc", "δ Psc", 9.832, 7.585, 4.43},
				{"epsilon_psc", "ε Psc", 357.166, 8.200, 4.28},
				{"nu_psc", "ν Psc", 6.401, 6.863, 4.44},
				{"xi_psc", "ξ Psc", 14.462, 9.158, 4.62},
				{"tau_psc", "τ Psc", 17.334, 30.089, 4.51},
				{"upsilon_psc", "υ Psc", 18.831, 27.264, 4.75},
				{"phi_psc", "φ Psc", 22.870, 24.584, 4.65},
				{"theta_psc", "θ Psc", 359.455, 6.863, 4.28},
			}),
			Edges: []Edge{
				{"eta_psc", "phi_psc"},
				{"phi_psc", "upsilon_psc"},
				{"upsilon_psc", "tau_psc"},
				{"tau_psc", "iota_psc"},
				{"iota_psc", "delta_psc"},
				{"delta_psc", "nu_psc"},
				{"nu_psc", "xi_psc"},
				{"xi_psc", "alpha_psc"},
				{"alpha_psc", "gamma_psc"},
				{"gamma_psc", "theta_psc"},
				{"theta_psc", "omega_psc"},
				{"omega_psc", "epsilon_psc"},
			},
		},
	}
}
