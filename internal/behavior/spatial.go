// internal/behavior/spatial.go
package behavior

import "math"

// ReasonNoCoordinates is reported when fewer than two click events carry
// screen coordinates, which leaves no movement to analyze.
const ReasonNoCoordinates = "insufficient click events with coordinates for precision analysis"

// clusterRadiusPx is the proximity threshold for the greedy clustering
// pass: a click joins the nearest cluster whose centroid is within this
// many pixels.
const clusterRadiusPx = 100.0

// Screen-region pixel thresholds. These assume a fixed reference viewport;
// the capture format does not carry the actual screen dimensions.
// TODO: parameterize from viewport metadata if the capture schema ever
// includes it.
const (
	regionHeaderMaxY       = 100.0
	regionFooterMinY       = 600.0
	regionLeftSidebarMaxX  = 300.0
	regionRightSidebarMinX = 1200.0
)

// AnalyzeSpatialPrecision runs the spatial pipeline over the
// coordinate-bearing subset of the sorted click events: movement distances
// and velocities, screen-region labels, greedy clustering, and the
// composite precision score. At least two coordinate-bearing clicks are
// required.
//
// Clustering is order-dependent: clicks are visited in chronological
// order and cluster centroids shift as members join, so the same
// coordinate multiset in a different order can cluster differently.
func AnalyzeSpatialPrecision(clicks []Event) Result[PrecisionAnalysis] {
	coords := make([]Vector2D, 0, len(clicks))
	times := make([]int64, 0, len(clicks))
	for _, c := range clicks {
		if c.HasCoords() {
			coords = append(coords, Vector2D{X: *c.X, Y: *c.Y})
			times = append(times, c.TimeMs)
		}
	}
	if len(coords) < 2 {
		return Insufficient[PrecisionAnalysis](ReasonNoCoordinates)
	}

	distances := make([]float64, 0, len(coords)-1)
	velocities := make([]float64, 0, len(coords)-1)
	for i := 1; i < len(coords); i++ {
		d := coords[i].Dist(coords[i-1])
		distances = append(distances, d)
		if dt := float64(times[i]-times[i-1]) / 1000; dt > 0 {
			velocities = append(velocities, d/dt)
		}
	}

	regions := make([]ScreenRegion, len(coords))
	for i, c := range coords {
		regions[i] = classifyScreenRegion(c.X, c.Y)
	}

	usage := analyzeScreenUsage(coords)
	total := sum(distances)

	var efficiency float64
	if total > 0 {
		efficiency = coords[len(coords)-1].Dist(coords[0]) / total * 100
	}

	var maxVelocity float64
	if len(velocities) > 0 {
		_, maxVelocity = minMax(velocities)
	}

	return Ok(PrecisionAnalysis{
		TotalClicks: len(coords),
		Movement: MovementAnalysis{
			TotalDistance:   round1(total),
			AverageDistance: round1(mean(distances)),
			Efficiency:      round1(efficiency),
			Pattern:         classifyMovementPattern(distances),
		},
		Velocity: VelocityAnalysis{
			AverageVelocity: round1(mean(velocities)),
			MaxVelocity:     round1(maxVelocity),
			Consistency:     classifyVelocityConsistency(velocities),
		},
		ScreenUsage: usage,
		ClickPatterns: ClickPatterns{
			Regions:        regions,
			Clustering:     clusterClicks(coords),
			PrecisionScore: precisionScore(distances, velocities),
		},
		Insights: precisionInsights(distances, velocities, usage, regions),
	})
}

// classifyScreenRegion labels a click by fixed pixel thresholds. Vertical
// bands (header/footer) take precedence over horizontal ones.
func classifyScreenRegion(x, y float64) ScreenRegion {
	switch {
	case y < regionHeaderMaxY:
		return RegionHeader
	case y > regionFooterMinY:
		return RegionFooter
	case x < regionLeftSidebarMaxX:
		return RegionLeftSidebar
	case x > regionRightSidebarMinX:
		return RegionRightSidebar
	default:
		return RegionMainContent
	}
}

// analyzeScreenUsage computes the bounding box and centroid of the clicks.
func analyzeScreenUsage(coords []Vector2D) ScreenUsage {
	xs := make([]float64, len(coords))
	ys := make([]float64, len(coords))
	for i, c := range coords {
		xs[i] = c.X
		ys[i] = c.Y
	}
	minX, maxX := minMax(xs)
	minY, maxY := minMax(ys)
	xRange := maxX - minX
	yRange := maxY - minY

	return ScreenUsage{
		CoverageX:   round1(xRange),
		CoverageY:   round1(yRange),
		CenterX:     round1(mean(xs)),
		CenterY:     round1(mean(ys)),
		Exploration: classifyExploration(xRange, yRange),
	}
}

// classifyExploration buckets the geometric mean of the x/y coverage.
func classifyExploration(xRange, yRange float64) ExplorationLevel {
	coverage := math.Sqrt(xRange * yRange)
	switch {
	case coverage < 200:
		return ExplorationMinimal
	case coverage < 500:
		return ExplorationFocused
	case coverage < 1000:
		return ExplorationModerate
	default:
		return ExplorationExtensive
	}
}

// cluster accumulates member coordinates so its centroid can shift as
// points join during the greedy pass.
type cluster struct {
	sum  Vector2D
	size int
}

func (c *cluster) centroid() Vector2D {
	return c.sum.Mul(1 / float64(c.size))
}

func (c *cluster) add(p Vector2D) {
	c.sum = c.sum.Add(p)
	c.size++
}

// clusterClicks runs a single greedy pass over the coordinates in input
// order: each click joins the nearest cluster whose current centroid is
// within clusterRadiusPx, otherwise it starts a new cluster. Fewer than
// three coordinates carry too little structure to cluster.
func clusterClicks(coords []Vector2D) ClusterAnalysis {
	if len(coords) < 3 {
		return ClusterAnalysis{
			ClusterCount:       len(coords),
			LargestClusterSize: 0,
			Type:               ClusteringInsufficientData,
		}
	}

	var clusters []*cluster
	for _, p := range coords {
		nearest := -1
		nearestDist := math.MaxFloat64
		for i, c := range clusters {
			if d := c.centroid().Dist(p); d < nearestDist {
				nearest = i
				nearestDist = d
			}
		}
		if nearest >= 0 && nearestDist <= clusterRadiusPx {
			clusters[nearest].add(p)
		} else {
			clusters = append(clusters, &cluster{sum: p, size: 1})
		}
	}

	largest := 0
	for _, c := range clusters {
		if c.size > largest {
			largest = c.size
		}
	}

	return ClusterAnalysis{
		ClusterCount:       len(clusters),
		LargestClusterSize: largest,
		Type:               classifyClusteringType(len(clusters), len(coords)),
	}
}

// classifyClusteringType buckets the cluster count relative to the click count.
func classifyClusteringType(clusterCount, totalClicks int) ClusteringType {
	n := float64(totalClicks)
	switch {
	case clusterCount == 1:
		return ClusteringHighlyFocused
	case float64(clusterCount) <= n*0.3:
		return ClusteringFocused
	case float64(clusterCount) <= n*0.6:
		return ClusteringModerateSpread
	default:
		return ClusteringWidelyDistributed
	}
}

// classifyMovementPattern buckets the average distance between clicks.
func classifyMovementPattern(distances []float64) MovementPattern {
	if len(distances) == 0 {
		return MovementNone
	}
	avg := mean(distances)
	switch {
	case avg < 100:
		return MovementMinimal
	case avg < 300:
		return MovementFocused
	case avg < 600:
		return MovementModerate
	default:
		return MovementExtensive
	}
}

// classifyVelocityConsistency buckets the coefficient of variation of the
// cursor velocities.
func classifyVelocityConsistency(velocities []float64) VelocityConsistency {
	if len(velocities) < 2 {
		return VelocityInsufficientData
	}

	m := mean(velocities)
	var cv float64
	if m > 0 {
		cv = sampleVariance(velocities) / m
	}

	switch {
	case cv < 0.5:
		return VelocityVeryConsistent
	case cv < 1.0:
		return VelocityConsistent
	case cv < 2.0:
		return VelocityVariable
	default:
		return VelocityHighlyVariable
	}
}

// precisionScore combines movement compactness (weight 0.6) with velocity
// consistency (weight 0.4) into a [0,100] score.
func precisionScore(distances, velocities []float64) float64 {
	if len(distances) == 0 || len(velocities) == 0 {
		return 0
	}

	distanceScore := clampScore(100 - mean(distances)/10)

	m := mean(velocities)
	var cv float64
	if m > 0 {
		cv = sampleVariance(velocities) / m
	}
	consistencyScore := clampScore(100 - cv*20)

	return round1(clampScore(distanceScore*0.6 + consistencyScore*0.4))
}

func sum(vals []float64) float64 {
	var s float64
	for _, v := range vals {
		s += v
	}
	return s
}
