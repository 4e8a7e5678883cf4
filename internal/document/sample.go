package document

func ptr[T any](v T) *T { return &v }

// NewSampleManifest returns a manifest exercising a plain pie, a donut and
// the legacy right-hand start angle.
func NewSampleManifest() *Manifest {
	return &Manifest{
		Version: 1,
		Defaults: ChartSpec{
			Gap:      ptr(0.015),
			Duration: "1s",
			Easing:   "expoOut",
			Size:     400,
		},
		Charts: []ChartSpec{
			{
				Name:   "browsers",
				Data:   []float64{64.5, 19.2, 9.1, 4.3, 2.9},
				Labels: []string{"Chrome", "Safari", "Edge", "Firefox", "Other"},
			},
			{
				Name:   "budget",
				Data:   []float64{1200, 450, 300, 250},
				Labels: []string{"Rent", "Food", "Transport", "Leisure"},
				Donut:  ptr(0.6),
			},
			{
				Name:  "legacy",
				Data:  []float64{3, 1},
				Start: "right",
				Donut: ptr(0.4),
				Gap:   ptr(0.03),
			},
		},
	}
}
