package services

import (
	"context"
	"fmt"
	"math"

	"trip-planner-service/internal/domain"
)

// Per-mode tuning: cruise speed, fixed boarding/wait overhead, and the score
// bonus applied during mode selection. Station-bound modes additionally carry
// the catchment radius within which the mode is reachable on foot.
type modeParams struct {
	SpeedKmh       float64
	OverheadMin    int
	MinimumMin     int
	Bonus          float64
	NeedsStation   bool
	StationRadiusM float64
}

var defaultModeParams = map[domain.TravelMode]modeParams{
	domain.ModeWalking: {SpeedKmh: 4.5, OverheadMin: 0, MinimumMin: 5},
	domain.ModeMTR:     {SpeedKmh: 40, OverheadMin: 10, MinimumMin: 12, Bonus: 20, NeedsStation: true, StationRadiusM: 600},
	domain.ModeBus:     {SpeedKmh: 20, OverheadMin: 15, MinimumMin: 18, Bonus: 5},
	domain.ModeTram:    {SpeedKmh: 15, OverheadMin: 10, MinimumMin: 12, Bonus: 10, NeedsStation: true, StationRadiusM: 400},
	domain.ModeFerry:   {SpeedKmh: 22, OverheadMin: 15, MinimumMin: 18, Bonus: 15, NeedsStation: true, StationRadiusM: 500},
	domain.ModeTaxi:    {SpeedKmh: 28, OverheadMin: 5, MinimumMin: 8},
}

// Station is a fixed transit access point (MTR station, tram stop, ferry
// pier) used for mode-availability checks.
type Station struct {
	Name     string
	Mode     domain.TravelMode
	Location domain.GeoLocation
}

// DefaultStations is a compact Hong Kong network sufficient for the seeded
// catalog; callers with richer data supply their own set.
var DefaultStations = []Station{
	{Name: "Central", Mode: domain.ModeMTR, Location: domain.GeoLocation{Latitude: 22.2819, Longitude: 114.1582}},
	{Name: "Admiralty", Mode: domain.ModeMTR, Location: domain.GeoLocation{Latitude: 22.2790, Longitude: 114.1645}},
	{Name: "Tsim Sha Tsui", Mode: domain.ModeMTR, Location: domain.GeoLocation{Latitude: 22.2976, Longitude: 114.1722}},
	{Name: "Mong Kok", Mode: domain.ModeMTR, Location: domain.GeoLocation{Latitude: 22.3193, Longitude: 114.1694}},
	{Name: "Causeway Bay", Mode: domain.ModeMTR, Location: domain.GeoLocation{Latitude: 22.2800, Longitude: 114.1850}},
	{Name: "Diamond Hill", Mode: domain.ModeMTR, Location: domain.GeoLocation{Latitude: 22.3400, Longitude: 114.2017}},
	{Name: "Western Market Terminus", Mode: domain.ModeTram, Location: domain.GeoLocation{Latitude: 22.2868, Longitude: 114.1500}},
	{Name: "Happy Valley Terminus", Mode: domain.ModeTram, Location: domain.GeoLocation{Latitude: 22.2700, Longitude: 114.1830}},
	{Name: "Causeway Bay Tram Stop", Mode: domain.ModeTram, Location: domain.GeoLocation{Latitude: 22.2803, Longitude: 114.1837}},
	{Name: "Central Pier", Mode: domain.ModeFerry, Location: domain.GeoLocation{Latitude: 22.2873, Longitude: 114.1607}},
	{Name: "Tsim Sha Tsui Pier", Mode: domain.ModeFerry, Location: domain.GeoLocation{Latitude: 22.2935, Longitude: 114.1686}},
	{Name: "Wan Chai Pier", Mode: domain.ModeFerry, Location: domain.GeoLocation{Latitude: 22.2860, Longitude: 114.1770}},
}

// TravelEstimator computes per-mode travel options between two points and
// selects the best one. It never fails for valid coordinates: any internal
// problem degrades to a walking estimate.
type TravelEstimator struct {
	params   map[domain.TravelMode]modeParams
	stations []Station
}

func NewTravelEstimator(stations []Station) *TravelEstimator {
	if len(stations) == 0 {
		stations = DefaultStations
	}
	return &TravelEstimator{params: defaultModeParams, stations: stations}
}

// DefaultModes is the allowed-mode list used when a caller does not restrict
// modes. Order matters: it is the tie-break for equal option scores.
var DefaultModes = []domain.TravelMode{
	domain.ModeWalking,
	domain.ModeMTR,
	domain.ModeBus,
	domain.ModeTram,
	domain.ModeFerry,
	domain.ModeTaxi,
}

// Estimate returns the best travel option between two points among the
// allowed modes. Options are scored as
// max(0, 100-duration) + max(0, 50-cost) + modeBonus; ties keep the earliest
// supplied mode.
func (e *TravelEstimator) Estimate(
	ctx context.Context,
	from, to domain.GeoLocation,
	allowed []domain.TravelMode,
) domain.TravelInfo {
	if len(allowed) == 0 {
		allowed = DefaultModes
	}

	distance := domain.Distance(from, to)

	best := e.walkingEstimate(from, to, distance)
	bestScore := math.Inf(-1)

	for _, mode := range allowed {
		option, ok := e.estimateMode(mode, from, to, distance)
		if !ok {
			continue
		}

		score := optionScore(option, distance, e.params[option.Mode].Bonus)
		// Strict comparison keeps the first supplied mode on ties.
		if score > bestScore {
			bestScore = score
			best = option
		}
	}

	return best
}

func optionScore(t domain.TravelInfo, distance float64, bonus float64) float64 {
	score := math.Max(0, 100-float64(t.DurationMinutes)) + math.Max(0, 50-t.Cost) + bonus
	// Long walks are technically valid options but rarely what a traveler
	// wants; penalize them past roughly a kilometer.
	if t.Mode == domain.ModeWalking {
		if distance <= 1000 {
			score += 10
		} else {
			score -= 15
		}
	}
	return score
}

// estimateMode computes a single option. Station-bound modes whose endpoints
// are outside every station catchment degrade to a walking estimate rather
// than disappearing from the comparison.
func (e *TravelEstimator) estimateMode(
	mode domain.TravelMode,
	from, to domain.GeoLocation,
	distance float64,
) (domain.TravelInfo, bool) {
	p, ok := e.params[mode]
	if !ok {
		return domain.TravelInfo{}, false
	}

	if p.NeedsStation && !(e.nearStation(from, mode, p.StationRadiusM) && e.nearStation(to, mode, p.StationRadiusM)) {
		return e.walkingEstimate(from, to, distance), true
	}

	if mode == domain.ModeWalking {
		return e.walkingEstimate(from, to, distance), true
	}

	duration := travelMinutes(distance, p)
	option := domain.TravelInfo{
		Mode:            mode,
		DurationMinutes: duration,
		DistanceMeters:  math.Round(distance),
		Cost:            fare(mode, distance),
	}
	if p.NeedsStation {
		option.Instructions = e.transitInstructions(mode, from, to, duration)
	} else {
		option.Instructions = instructions(mode, from, to, distance, duration)
	}
	return option, true
}

func (e *TravelEstimator) transitInstructions(mode domain.TravelMode, from, to domain.GeoLocation, durationMinutes int) []string {
	board := e.nearestStationName(from, mode)
	alight := e.nearestStationName(to, mode)
	return []string{
		fmt.Sprintf("Walk to %s", board),
		fmt.Sprintf("Take the %s to %s", mode, alight),
		fmt.Sprintf("Total journey about %d minutes including transfers", durationMinutes),
	}
}

func (e *TravelEstimator) walkingEstimate(from, to domain.GeoLocation, distance float64) domain.TravelInfo {
	p := e.params[domain.ModeWalking]
	duration := travelMinutes(distance, p)
	return domain.TravelInfo{
		Mode:            domain.ModeWalking,
		DurationMinutes: duration,
		DistanceMeters:  math.Round(distance),
		Cost:            0,
		Instructions:    instructions(domain.ModeWalking, from, to, distance, duration),
	}
}

// travelMinutes converts distance to minutes at cruise speed, adds the fixed
// boarding overhead, and applies the per-mode floor.
func travelMinutes(distanceMeters float64, p modeParams) int {
	minutes := int(math.Round(distanceMeters/1000/p.SpeedKmh*60)) + p.OverheadMin
	if minutes < p.MinimumMin {
		minutes = p.MinimumMin
	}
	return minutes
}

// fare prices a leg: step functions of distance for transit, base fare plus
// per-200m increments beyond the flagfall distance for taxi, a flat fare for
// the tram, free for walking.
func fare(mode domain.TravelMode, distanceMeters float64) float64 {
	switch mode {
	case domain.ModeWalking:
		return 0
	case domain.ModeMTR:
		switch {
		case distanceMeters < 2000:
			return 5.0
		case distanceMeters < 5000:
			return 7.5
		case distanceMeters < 10000:
			return 11.0
		default:
			return 16.5
		}
	case domain.ModeBus:
		switch {
		case distanceMeters < 5000:
			return 4.8
		case distanceMeters < 10000:
			return 6.8
		default:
			return 9.8
		}
	case domain.ModeTram:
		return 3.0
	case domain.ModeFerry:
		if distanceMeters < 2000 {
			return 3.2
		}
		return 4.6
	case domain.ModeTaxi:
		const (
			flagfall         = 27.0
			flagfallMeters   = 2000.0
			incrementMeters  = 200.0
			incrementPayment = 1.9
		)
		extra := math.Max(0, distanceMeters-flagfallMeters)
		return flagfall + math.Ceil(extra/incrementMeters)*incrementPayment
	default:
		return 0
	}
}

func (e *TravelEstimator) nearStation(loc domain.GeoLocation, mode domain.TravelMode, radius float64) bool {
	for _, s := range e.stations {
		if s.Mode == mode && domain.Distance(loc, s.Location) <= radius {
			return true
		}
	}
	return false
}

func (e *TravelEstimator) nearestStationName(loc domain.GeoLocation, mode domain.TravelMode) string {
	bestName := ""
	bestDist := math.Inf(1)
	for _, s := range e.stations {
		if s.Mode != mode {
			continue
		}
		if d := domain.Distance(loc, s.Location); d < bestDist {
			bestDist = d
			bestName = s.Name
		}
	}
	return bestName
}

func instructions(mode domain.TravelMode, from, to domain.GeoLocation, distanceMeters float64, durationMinutes int) []string {
	destination := to.Address
	if destination == "" {
		destination = "your destination"
	}

	switch mode {
	case domain.ModeWalking:
		return []string{
			fmt.Sprintf("Walk %.0f m to %s", distanceMeters, destination),
			fmt.Sprintf("Allow about %d minutes on foot", durationMinutes),
		}
	case domain.ModeBus:
		return []string{
			fmt.Sprintf("Board a bus toward %s (allow 15 minutes for waiting and boarding)", destination),
			fmt.Sprintf("Ride %.1f km to %s", distanceMeters/1000, destination),
		}
	case domain.ModeTaxi:
		return []string{
			"Hail a taxi or book via app (allow 5 minutes for pickup)",
			fmt.Sprintf("Ride %.1f km to %s", distanceMeters/1000, destination),
		}
	default:
		return []string{
			fmt.Sprintf("Travel %.1f km by %s to %s", distanceMeters/1000, mode, destination),
		}
	}
}
