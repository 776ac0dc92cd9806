package services

// The roadmap view draws progress along a fixed S-curve made of two quadratic
// Bezier segments, start anchor at the bottom (level 0) and far anchor at the
// top (level 100):
//
//	M 50,400  Q 10,300 50,200  Q 90,100 50,0
//
// pathDashLength is the stroke dash length used to reveal the travelled part
// of the curve.
const pathDashLength = 500.0

var (
	curveLowerStart = pathPointXY{50, 400}
	curveLowerCtrl  = pathPointXY{10, 300}
	curveMid        = pathPointXY{50, 200}
	curveUpperCtrl  = pathPointXY{90, 100}
	curveUpperEnd   = pathPointXY{50, 0}
)

type pathPointXY struct{ X, Y float64 }

// PathMarker is one milestone placed on the curve.
type PathMarker struct {
	StepID  string  `json:"stepId"`
	Label   string  `json:"label"`
	Level   int     `json:"level"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Reached bool    `json:"reached"`
}

// RoadmapPath is the full geometry for one roadmap rendering: every milestone
// marker, the current-progress marker and the stroke dash offset.
type RoadmapPath struct {
	Markers    []PathMarker `json:"markers"`
	ProgressX  float64      `json:"progressX"`
	ProgressY  float64      `json:"progressY"`
	DashOffset float64      `json:"dashOffset"`
}

// MapRoadmapPath places each milestone and the current progress on the curve.
// Levels and progress are clamped to [0,100] before mapping; milestones with
// equal levels keep their given order. An empty step list still yields the
// progress marker.
func MapRoadmapPath(steps []*RoadmapStep, progress int) RoadmapPath {
	progress = clampLevel(progress)
	out := RoadmapPath{
		Markers:    make([]PathMarker, 0, len(steps)),
		DashOffset: pathDashLength * (1 - float64(progress)/100),
	}
	for _, st := range steps {
		level := clampLevel(st.Level)
		p := curvePoint(float64(level) / 100)
		out.Markers = append(out.Markers, PathMarker{
			StepID:  st.ID,
			Label:   st.Label,
			Level:   level,
			X:       p.X,
			Y:       p.Y,
			Reached: progress >= level,
		})
	}
	pp := curvePoint(float64(progress) / 100)
	out.ProgressX = pp.X
	out.ProgressY = pp.Y
	return out
}

// curvePoint evaluates the piecewise quadratic curve at t in [0,1], t=0 at
// the start anchor and t=1 at the far anchor.
func curvePoint(t float64) pathPointXY {
	if t <= 0.5 {
		return quadBezier(curveLowerStart, curveLowerCtrl, curveMid, t*2)
	}
	return quadBezier(curveMid, curveUpperCtrl, curveUpperEnd, (t-0.5)*2)
}

func quadBezier(p0, p1, p2 pathPointXY, u float64) pathPointXY {
	inv := 1 - u
	return pathPointXY{
		X: inv*inv*p0.X + 2*u*inv*p1.X + u*u*p2.X,
		Y: inv*inv*p0.Y + 2*u*inv*p1.Y + u*u*p2.Y,
	}
}

func clampLevel(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
