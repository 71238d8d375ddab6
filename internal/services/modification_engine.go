package services

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"trip-planner-service/internal/domain"
	"trip-planner-service/internal/platform/obs"
	"trip-planner-service/internal/ports"
)

// Activities may not be scheduled to end at or after this hour when ADD
// falls back to appending at the end of a day.
const dayEndHour = 22

// Rush-hour retiming targets for CROWD_ADJUSTMENT.
const (
	offPeakMorningHour = 11
	offPeakEveningHour = 15
)

// ModificationEngine applies one modification to an itinerary snapshot and
// returns a new, fully validated snapshot. The input is never mutated; on
// any error the caller keeps the prior snapshot. Callers serialize
// concurrent modifications to the same itinerary.
type ModificationEngine struct {
	scheduler *DayScheduler
	catalog   ports.AttractionCatalog
	weather   ports.WeatherProvider
	now       func() time.Time
}

func NewModificationEngine(
	scheduler *DayScheduler,
	catalog ports.AttractionCatalog,
	weather ports.WeatherProvider,
) *ModificationEngine {
	return &ModificationEngine{
		scheduler: scheduler,
		catalog:   catalog,
		weather:   weather,
		now:       time.Now,
	}
}

// Apply dispatches on the modification variant, runs the transition, and
// validates the candidate snapshot before handing it back.
func (e *ModificationEngine) Apply(
	ctx context.Context,
	it domain.Itinerary,
	mod domain.Modification,
) (_ domain.Itinerary, err error) {
	if mod == nil {
		return domain.Itinerary{}, &domain.ValidationError{Detail: "modification payload is missing"}
	}
	defer obs.Time(ctx, "apply "+string(mod.Kind()))(&err)

	next := cloneItinerary(it)

	switch m := mod.(type) {
	case domain.AddActivity:
		next, err = e.addActivity(ctx, next, m)
	case domain.RemoveActivity:
		next, err = e.removeActivity(ctx, next, m)
	case domain.ReplaceActivity:
		next, err = e.replaceActivity(ctx, next, m)
	case domain.RescheduleActivity:
		next, err = e.rescheduleActivity(ctx, next, m)
	case domain.WeatherAdjustment:
		next, err = e.weatherAdjustment(ctx, next, m)
	case domain.CrowdAdjustment:
		next, err = e.crowdAdjustment(ctx, next, m)
	default:
		return domain.Itinerary{}, &domain.ValidationError{Detail: fmt.Sprintf(
			"unknown modification type %T", mod,
		)}
	}
	if err != nil {
		return domain.Itinerary{}, err
	}

	next = next.RecomputeTotals()
	if err := next.Validate(); err != nil {
		return domain.Itinerary{}, fmt.Errorf("apply %s: candidate snapshot rejected: %w", mod.Kind(), err)
	}
	return next, nil
}

// addActivity inserts the proposed activity into the day matching its start
// date. A direct conflict triggers slot-finding; only when no slot exists
// before the end-of-day cutoff does the request fail.
func (e *ModificationEngine) addActivity(
	ctx context.Context,
	it domain.Itinerary,
	mod domain.AddActivity,
) (domain.Itinerary, error) {
	a := mod.Activity
	if a.StartTime.IsZero() {
		return domain.Itinerary{}, &domain.ValidationError{Detail: "ADD_ACTIVITY requires a start time"}
	}
	if a.DurationMinutes <= 0 {
		if !a.EndTime.After(a.StartTime) {
			return domain.Itinerary{}, &domain.ValidationError{Detail: "ADD_ACTIVITY requires a positive duration"}
		}
		a.DurationMinutes = int(a.EndTime.Sub(a.StartTime).Minutes())
	}
	a.EndTime = a.StartTime.Add(time.Duration(a.DurationMinutes) * time.Minute)
	if a.ID == "" {
		a.ID = uuid.NewString()
	}

	di := it.DayIndexFor(a.StartTime)
	if di < 0 {
		return domain.Itinerary{}, &domain.ValidationError{Detail: fmt.Sprintf(
			"date %s is outside the itinerary range", a.StartTime.Format("2006-01-02"),
		)}
	}
	day := it.Days[di]

	conflict := false
	for _, existing := range day.Activities {
		if a.Overlaps(existing) {
			conflict = true
			break
		}
	}

	if conflict {
		retimed, ok := findSlot(day, a)
		if !ok {
			return domain.Itinerary{}, &domain.ConflictError{
				ActivityID: a.ID,
				Detail: fmt.Sprintf(
					"no free slot of %d minutes on %s before %02d:00",
					a.DurationMinutes, day.Date.Format("2006-01-02"), dayEndHour,
				),
			}
		}
		a = retimed
	}

	day.Activities = domain.SortedByStart(append(day.Activities, a))
	it.Days[di] = e.scheduler.RecomputeTravel(ctx, day)
	return it, nil
}

// findSlot searches the day for a free gap that fits the activity. Interior
// gaps between consecutive activities are preferred; as a last resort the
// activity is appended after the final one, provided it still ends before
// the end-of-day cutoff.
func findSlot(day domain.ItineraryDay, a domain.ItineraryActivity) (domain.ItineraryActivity, bool) {
	need := time.Duration(a.DurationMinutes) * time.Minute
	sorted := domain.SortedByStart(day.Activities)

	for i := 1; i < len(sorted); i++ {
		gapStart := sorted[i-1].EndTime
		gapEnd := sorted[i].StartTime
		if gapEnd.Sub(gapStart) >= need {
			a.StartTime = gapStart
			a.EndTime = gapStart.Add(need)
			return a, true
		}
	}

	if len(sorted) > 0 {
		last := sorted[len(sorted)-1]
		cutoff := time.Date(
			day.Date.Year(), day.Date.Month(), day.Date.Day(),
			dayEndHour, 0, 0, 0, day.Date.Location(),
		)
		if last.EndTime.Add(need).Before(cutoff) {
			a.StartTime = last.EndTime
			a.EndTime = last.EndTime.Add(need)
			return a, true
		}
	}

	return domain.ItineraryActivity{}, false
}

// removeActivity deletes one activity by id and refreshes travel legs for
// the whole trip (cheap, so done trip-wide rather than just the affected
// day).
func (e *ModificationEngine) removeActivity(
	ctx context.Context,
	it domain.Itinerary,
	mod domain.RemoveActivity,
) (domain.Itinerary, error) {
	if mod.ActivityID == "" {
		return domain.Itinerary{}, &domain.ValidationError{Detail: "REMOVE_ACTIVITY requires an activity id"}
	}

	di, ai, ok := it.FindActivity(mod.ActivityID)
	if !ok {
		return domain.Itinerary{}, &domain.NotFoundError{Kind: "activity", ID: mod.ActivityID}
	}

	day := it.Days[di]
	day.Activities = slices.Delete(slices.Clone(day.Activities), ai, ai+1)
	it.Days[di] = day

	for i := range it.Days {
		it.Days[i] = e.scheduler.RecomputeTravel(ctx, it.Days[i])
	}
	return it, nil
}

// replaceActivity swaps an activity's content while preserving its original
// start time. The end time follows the replacement duration when one is
// given, otherwise the original duration.
func (e *ModificationEngine) replaceActivity(
	ctx context.Context,
	it domain.Itinerary,
	mod domain.ReplaceActivity,
) (domain.Itinerary, error) {
	if mod.ActivityID == "" {
		return domain.Itinerary{}, &domain.ValidationError{Detail: "REPLACE_ACTIVITY requires an activity id"}
	}

	di, ai, ok := it.FindActivity(mod.ActivityID)
	if !ok {
		return domain.Itinerary{}, &domain.NotFoundError{Kind: "activity", ID: mod.ActivityID}
	}

	day := it.Days[di]
	current := day.Activities[ai]

	duration := mod.Content.DurationMinutes
	if duration <= 0 {
		duration = current.DurationMinutes
	}

	replaced := current
	replaced.AttractionID = mod.Content.AttractionID
	replaced.Name = mod.Content.Name
	replaced.Description = mod.Content.Description
	replaced.Location = mod.Content.Location
	replaced.Category = mod.Content.Category
	replaced.EstimatedCost = mod.Content.EstimatedCost
	replaced.WeatherDependent = mod.Content.WeatherDependent
	replaced.PracticalTips = mod.Content.PracticalTips
	replaced.DurationMinutes = duration
	replaced.EndTime = current.StartTime.Add(time.Duration(duration) * time.Minute)

	day.Activities[ai] = replaced
	it.Days[di] = e.scheduler.RecomputeTravel(ctx, day)
	return it, nil
}

// rescheduleActivity moves an activity to a new start time, keeping its
// duration. Unlike ADD there is no slot-finding: any overlap with another
// activity is a hard conflict.
func (e *ModificationEngine) rescheduleActivity(
	ctx context.Context,
	it domain.Itinerary,
	mod domain.RescheduleActivity,
) (domain.Itinerary, error) {
	if mod.ActivityID == "" {
		return domain.Itinerary{}, &domain.ValidationError{Detail: "RESCHEDULE_ACTIVITY requires an activity id"}
	}
	if mod.NewStart.IsZero() {
		return domain.Itinerary{}, &domain.ValidationError{Detail: "RESCHEDULE_ACTIVITY requires a new start time"}
	}

	di, ai, ok := it.FindActivity(mod.ActivityID)
	if !ok {
		return domain.Itinerary{}, &domain.NotFoundError{Kind: "activity", ID: mod.ActivityID}
	}

	target := it.DayIndexFor(mod.NewStart)
	if target < 0 {
		return domain.Itinerary{}, &domain.ValidationError{Detail: fmt.Sprintf(
			"new start %s is outside the itinerary range", mod.NewStart.Format("2006-01-02"),
		)}
	}

	moved := it.Days[di].Activities[ai]
	moved.StartTime = mod.NewStart
	moved.EndTime = mod.NewStart.Add(time.Duration(moved.DurationMinutes) * time.Minute)

	for _, other := range it.Days[target].Activities {
		if other.ID == moved.ID {
			continue
		}
		if moved.Overlaps(other) {
			return domain.Itinerary{}, &domain.ConflictError{
				ActivityID: moved.ID,
				Detail: fmt.Sprintf(
					"new slot %s–%s overlaps activity %s",
					moved.StartTime.Format("15:04"), moved.EndTime.Format("15:04"), other.ID,
				),
			}
		}
	}

	source := it.Days[di]
	source.Activities = slices.Delete(slices.Clone(source.Activities), ai, ai+1)
	it.Days[di] = source

	dest := it.Days[target]
	dest.Activities = domain.SortedByStart(append(dest.Activities, moved))
	it.Days[target] = dest

	it.Days[di] = e.scheduler.RecomputeTravel(ctx, it.Days[di])
	if target != di {
		it.Days[target] = e.scheduler.RecomputeTravel(ctx, it.Days[target])
	}
	return it, nil
}

// Preferred substitution categories, tried in order, when weather pushes an
// activity indoors.
var indoorCategories = []string{"museum", "gallery", "shopping", "cultural"}

// weatherAdjustment swaps the day's weather-dependent activities for indoor
// alternatives, preserving each activity's time slot. A no-op when
// conditions are outdoor friendly or cannot be determined.
func (e *ModificationEngine) weatherAdjustment(
	ctx context.Context,
	it domain.Itinerary,
	mod domain.WeatherAdjustment,
) (domain.Itinerary, error) {
	date := mod.Date
	if date.IsZero() {
		date = e.now()
	}

	di := it.DayIndexFor(date)
	if di < 0 {
		return domain.Itinerary{}, &domain.ValidationError{Detail: fmt.Sprintf(
			"date %s is outside the itinerary range", date.Format("2006-01-02"),
		)}
	}

	conditions := mod.Conditions
	if conditions == nil {
		current, err := e.weather.Current(ctx)
		if err != nil {
			// Weather outages are recovered locally: without conditions
			// there is nothing safe to adjust, so the snapshot stands.
			return it, nil
		}
		conditions = &current
	}
	if conditions.OutdoorFriendly() {
		return it, nil
	}

	used := usedAttractionIDs(it)
	alternatives := e.indoorAlternatives(ctx)

	day := it.Days[di]
	for ai, a := range day.Activities {
		if !a.WeatherDependent {
			continue
		}

		alt, ok := nextAlternative(alternatives, used)
		if !ok {
			break
		}
		used[alt.ID] = struct{}{}

		swapped := a
		swapped.AttractionID = alt.ID
		swapped.Name = alt.Name
		swapped.Description = alt.Description
		swapped.Location = alt.Location
		swapped.Category = primaryCategory(alt)
		swapped.EstimatedCost = alt.EstimatedCost
		swapped.WeatherDependent = false
		swapped.PracticalTips = alt.PracticalTips
		// Time slot is preserved exactly; the alternative fills the gap the
		// outdoor activity occupied.
		day.Activities[ai] = swapped
	}
	it.Days[di] = day

	for i := range it.Days {
		it.Days[i] = e.scheduler.RecomputeTravel(ctx, it.Days[i])
	}
	return it, nil
}

func (e *ModificationEngine) indoorAlternatives(ctx context.Context) []domain.AttractionCandidate {
	var out []domain.AttractionCandidate
	for _, cat := range indoorCategories {
		candidates, err := e.catalog.ByCategory(ctx, cat)
		if err != nil {
			continue
		}
		for _, c := range candidates {
			if !c.WeatherDependent {
				out = append(out, c)
			}
		}
	}
	return out
}

func nextAlternative(
	alternatives []domain.AttractionCandidate,
	used map[string]struct{},
) (domain.AttractionCandidate, bool) {
	for _, alt := range alternatives {
		if _, taken := used[alt.ID]; !taken {
			return alt, true
		}
	}
	return domain.AttractionCandidate{}, false
}

func usedAttractionIDs(it domain.Itinerary) map[string]struct{} {
	used := map[string]struct{}{}
	for _, d := range it.Days {
		for _, a := range d.Activities {
			used[a.AttractionID] = struct{}{}
		}
	}
	return used
}

// crowdAdjustment retimes the day's rush-hour activities to fixed off-peak
// hours: morning rush starts move to 11:00, evening rush starts to 15:00.
// Only acts while the current time itself falls in a rush window. Retimed
// activities stack after one another, and past any activity already holding
// the target slot, keeping the day overlap-free.
func (e *ModificationEngine) crowdAdjustment(
	ctx context.Context,
	it domain.Itinerary,
	mod domain.CrowdAdjustment,
) (domain.Itinerary, error) {
	date := mod.Date
	if date.IsZero() {
		date = e.now()
	}

	di := it.DayIndexFor(date)
	if di < 0 {
		return domain.Itinerary{}, &domain.ValidationError{Detail: fmt.Sprintf(
			"date %s is outside the itinerary range", date.Format("2006-01-02"),
		)}
	}

	if !inRushWindow(e.now().Hour()) {
		return it, nil
	}

	day := it.Days[di]
	var morningCursor, eveningCursor time.Time

	for ai, a := range day.Activities {
		hour := a.StartTime.Hour()
		if !inRushWindow(hour) {
			continue
		}

		targetHour := offPeakEveningHour
		cursor := &eveningCursor
		if hour < 12 {
			targetHour = offPeakMorningHour
			cursor = &morningCursor
		}

		start := time.Date(
			day.Date.Year(), day.Date.Month(), day.Date.Day(),
			targetHour, 0, 0, 0, day.Date.Location(),
		)
		if !cursor.IsZero() && cursor.After(start) {
			start = *cursor
		}
		start = firstFreeStart(day, a.ID, start, time.Duration(a.DurationMinutes)*time.Minute)

		moved := a
		moved.StartTime = start
		moved.EndTime = start.Add(time.Duration(moved.DurationMinutes) * time.Minute)
		day.Activities[ai] = moved
		*cursor = moved.EndTime
	}

	day.Activities = domain.SortedByStart(day.Activities)
	it.Days[di] = e.scheduler.RecomputeTravel(ctx, day)
	return it, nil
}

// firstFreeStart slides a candidate start forward past every activity that
// will stay in place (anything outside the rush windows) until the slot
// [start, start+duration) is free. Rush-hour activities are skipped: they are
// themselves being retimed in this pass.
func firstFreeStart(
	day domain.ItineraryDay,
	movingID string,
	start time.Time,
	duration time.Duration,
) time.Time {
	for {
		end := start.Add(duration)
		bumped := false
		for _, o := range day.Activities {
			if o.ID == movingID || inRushWindow(o.StartTime.Hour()) {
				continue
			}
			if start.Before(o.EndTime) && o.StartTime.Before(end) {
				start = o.EndTime
				end = start.Add(duration)
				bumped = true
			}
		}
		if !bumped {
			return start
		}
	}
}

// inRushWindow reports whether an hour falls in the 08–10 or 17–19 rush
// windows (start inclusive, end exclusive).
func inRushWindow(hour int) bool {
	return (hour >= 8 && hour < 10) || (hour >= 17 && hour < 19)
}

// cloneItinerary deep-copies the mutable parts of a snapshot so transitions
// never touch shared state.
func cloneItinerary(it domain.Itinerary) domain.Itinerary {
	out := it
	out.Days = make([]domain.ItineraryDay, len(it.Days))
	for i, d := range it.Days {
		nd := d
		nd.Activities = make([]domain.ItineraryActivity, len(d.Activities))
		for j, a := range d.Activities {
			na := a
			if a.TravelFromPrevious != nil {
				leg := *a.TravelFromPrevious
				na.TravelFromPrevious = &leg
			}
			na.PracticalTips = slices.Clone(a.PracticalTips)
			nd.Activities[j] = na
		}
		if d.WeatherForecast != nil {
			f := *d.WeatherForecast
			nd.WeatherForecast = &f
		}
		out.Days[i] = nd
	}
	out.WeatherConsiderations = slices.Clone(it.WeatherConsiderations)
	return out
}
