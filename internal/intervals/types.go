package intervals

// Athlete is the athlete profile as returned by the intervals.icu API.
// Only the fields the sync needs are mapped; the profile carries much more.
type Athlete struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	ICUWeight     *float64        `json:"icu_weight"`
	ICURestingHR  *float64        `json:"icu_resting_hr"`
	SportSettings []SportSettings `json:"sportSettings"`
}

// SportSettings holds per-sport threshold settings of the athlete profile.
type SportSettings struct {
	Types []string `json:"types"`
	FTP   *float64 `json:"ftp"`
	LTHR  *float64 `json:"lthr"`
}

// CyclingSettings returns the first sport settings entry that applies to
// cycling (indoor or outdoor), or nil when the profile has none.
func (a *Athlete) CyclingSettings() *SportSettings {
	for i := range a.SportSettings {
		for _, sportType := range a.SportSettings[i].Types {
			if sportType == "Ride" || sportType == "VirtualRide" {
				return &a.SportSettings[i]
			}
		}
	}
	return nil
}

type Activity struct {
	ID                  string   `json:"id"`
	StartDateLocal      string   `json:"start_date_local"`
	Type                string   `json:"type"`
	Name                string   `json:"name"`
	MovingTime          *float64 `json:"moving_time"`
	Distance            *float64 `json:"distance"`
	ICUTrainingLoad     *float64 `json:"icu_training_load"`
	AverageWatts        *float64 `json:"average_watts"`
	ICUWeightedAvgWatts *float64 `json:"icu_weighted_avg_watts"`
	ICUAverageHR        *float64 `json:"icu_average_hr"`
	ICUHRDecoupling     *float64 `json:"icu_hr_decoupling"`
}

// Wellness is a single day of wellness data. The record ID is the local
// calendar date in YYYY-MM-DD form.
type Wellness struct {
	ID        string   `json:"id"`
	CTL       *float64 `json:"ctl"`
	ATL       *float64 `json:"atl"`
	RampRate  *float64 `json:"rampRate"`
	Weight    *float64 `json:"weight"`
	RestingHR *float64 `json:"restingHR"`
	HRV       *float64 `json:"hrv"`
}

// Event is a calendar entry, most commonly a planned workout.
type Event struct {
	ID             int64  `json:"id"`
	StartDateLocal string `json:"start_date_local"`
	Name           string `json:"name"`
	Category       string `json:"category"`
}
