package scorefeed

type scoreboardEnvelope struct {
	Events []eventPayload `json:"events"`
}

type eventPayload struct {
	ID           string               `json:"id"`
	Date         string               `json:"date"`
	Competitions []competitionPayload `json:"competitions"`
}

type competitionPayload struct {
	Date        string              `json:"date"`
	Competitors []competitorPayload `json:"competitors"`
}

type competitorPayload struct {
	HomeAway   string             `json:"homeAway"`
	Team       teamPayload        `json:"team"`
	LineScores []lineScorePayload `json:"linescores"`
}

type teamPayload struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	DisplayName string `json:"displayName"`
}

type lineScorePayload struct {
	Value float64 `json:"value"`
}

type gameDetailEnvelope struct {
	Header headerPayload `json:"header"`
}

type headerPayload struct {
	ID           string               `json:"id"`
	Competitions []competitionPayload `json:"competitions"`
}
