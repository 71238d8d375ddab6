package domain

import "time"

// ModificationKind names one of the six supported itinerary transitions.
type ModificationKind string

const (
	KindAddActivity        ModificationKind = "ADD_ACTIVITY"
	KindRemoveActivity     ModificationKind = "REMOVE_ACTIVITY"
	KindReplaceActivity    ModificationKind = "REPLACE_ACTIVITY"
	KindRescheduleActivity ModificationKind = "RESCHEDULE_ACTIVITY"
	KindWeatherAdjustment  ModificationKind = "WEATHER_ADJUSTMENT"
	KindCrowdAdjustment    ModificationKind = "CROWD_ADJUSTMENT"
)

// Modification is a sealed sum type over the six transition variants. Each
// variant carries exactly the payload its transition needs; the engine
// matches exhaustively and rejects unknown dynamic types.
type Modification interface {
	Kind() ModificationKind
	// Why returns the caller-supplied reason for the change.
	Why() string

	modification()
}

// AddActivity inserts a proposed activity into the day matching the
// activity's start date. The engine may retime it through slot-finding.
type AddActivity struct {
	Activity    ItineraryActivity
	Reason      string
	RequestedAt time.Time
}

// RemoveActivity deletes one activity by id.
type RemoveActivity struct {
	ActivityID  string
	Reason      string
	RequestedAt time.Time
}

// ActivityContent holds the replaceable content fields of an activity.
// A zero DurationMinutes keeps the original duration.
type ActivityContent struct {
	AttractionID     string
	Name             string
	Description      string
	Location         GeoLocation
	Category         string
	DurationMinutes  int
	EstimatedCost    float64
	WeatherDependent bool
	PracticalTips    []string
}

// ReplaceActivity swaps an activity's content while keeping its original
// start time.
type ReplaceActivity struct {
	ActivityID  string
	Content     ActivityContent
	Reason      string
	RequestedAt time.Time
}

// RescheduleActivity moves an activity to a new start time. Unlike
// AddActivity, no slot-finding is attempted: an overlap is a hard conflict.
type RescheduleActivity struct {
	ActivityID  string
	NewStart    time.Time
	Reason      string
	RequestedAt time.Time
}

// WeatherAdjustment swaps weather-dependent activities on the given date for
// indoor alternatives when conditions are not outdoor friendly. Conditions
// may be supplied by the caller; when nil the engine looks them up.
type WeatherAdjustment struct {
	Date        time.Time
	Conditions  *WeatherInfo
	Reason      string
	RequestedAt time.Time
}

// CrowdAdjustment retimes rush-hour activities on the given date to fixed
// off-peak hours.
type CrowdAdjustment struct {
	Date        time.Time
	Reason      string
	RequestedAt time.Time
}

func (m AddActivity) Kind() ModificationKind        { return KindAddActivity }
func (m RemoveActivity) Kind() ModificationKind     { return KindRemoveActivity }
func (m ReplaceActivity) Kind() ModificationKind    { return KindReplaceActivity }
func (m RescheduleActivity) Kind() ModificationKind { return KindRescheduleActivity }
func (m WeatherAdjustment) Kind() ModificationKind  { return KindWeatherAdjustment }
func (m CrowdAdjustment) Kind() ModificationKind    { return KindCrowdAdjustment }

func (m AddActivity) Why() string        { return m.Reason }
func (m RemoveActivity) Why() string     { return m.Reason }
func (m ReplaceActivity) Why() string    { return m.Reason }
func (m RescheduleActivity) Why() string { return m.Reason }
func (m WeatherAdjustment) Why() string  { return m.Reason }
func (m CrowdAdjustment) Why() string    { return m.Reason }

func (AddActivity) modification()        {}
func (RemoveActivity) modification()     {}
func (ReplaceActivity) modification()    {}
func (RescheduleActivity) modification() {}
func (WeatherAdjustment) modification()  {}
func (CrowdAdjustment) modification()    {}
