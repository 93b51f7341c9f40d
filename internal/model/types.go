package model

import "time"

// Segment types. The set is closed; anything else rates to zero.
const (
	SegmentMatch = "Match"
	SegmentAngle = "Angle"
)

// Show lifecycle. A show moves Planned -> Complete exactly once.
const (
	ShowPlanned  = "Planned"
	ShowComplete = "Complete"
)

// Event tiers control post-show morale multipliers.
const (
	TierMonthly  = "Monthly_Event"
	TierMajor    = "Major_Event"
	TierFlagship = "Flagship_Event"
)

// Storyline lifecycle.
const (
	StorylineActive    = "Active"
	StorylineConcluded = "Concluded"
)

// CareerEvent classifications.
const (
	CareerAngle     = "Angle"
	CareerMatchWin  = "Match Win"
	CareerMatchLoss = "Match Loss"
	CareerMatchDraw = "Match Draw/NC"
)

// Dataset is the immutable root of a template world. Seeded once, never mutated.
type Dataset struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Stats are a wrestler's in-ring attributes, each 0-100.
type Stats struct {
	Brawling  int `json:"brawling"`
	Speed     int `json:"speed"`
	Technical int `json:"technical"`
	Charisma  int `json:"charisma"`
}

// Workrate is the average of the three in-ring stats. Charisma is excluded;
// the rating engine weights it separately.
func (s Stats) Workrate() float64 {
	return float64(s.Brawling+s.Speed+s.Technical) / 3.0
}

// Company is a promotion. The first company copied into a save becomes the
// player's company.
type Company struct {
	ID          string `json:"id"`
	DatasetID   string `json:"datasetId,omitempty"`
	Name        string `json:"name"`
	Prestige    int    `json:"prestige"`
	Finances    int64  `json:"finances"`
	PublicImage int    `json:"publicImage"`
	RiskLevel   int    `json:"riskLevel"`
	Size        string `json:"size"`
}

// Wrestler is a performer. Morale is clamped to [0,100].
type Wrestler struct {
	ID             string   `json:"id"`
	DatasetID      string   `json:"datasetId,omitempty"`
	Name           string   `json:"name"`
	Stats          Stats    `json:"stats"`
	Disposition    string   `json:"disposition"`
	Gimmick        string   `json:"gimmick"`
	AlternateNames []string `json:"alternateNames,omitempty"`
	Morale         int      `json:"morale"`
}

// Staff is non-wrestling personnel (agents, referees, commentators).
type Staff struct {
	ID        string `json:"id"`
	DatasetID string `json:"datasetId,omitempty"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	CompanyID string `json:"companyId,omitempty"`
}

// Title is a championship belt.
type Title struct {
	ID              string `json:"id"`
	DatasetID       string `json:"datasetId,omitempty"`
	CompanyID       string `json:"companyId"`
	TitleName       string `json:"titleName"`
	Prestige        int    `json:"prestige"`
	IsTagTeam       bool   `json:"isTagTeam"`
	InitialHolderID string `json:"initialHolderId,omitempty"`
}

// TVDeal is a broadcast contract.
type TVDeal struct {
	ID            string `json:"id"`
	DatasetID     string `json:"datasetId,omitempty"`
	CompanyID     string `json:"companyId"`
	Network       string `json:"network"`
	WeeklyRevenue int64  `json:"weeklyRevenue"`
}

// TVShow is a recurring weekly program.
type TVShow struct {
	ID        string `json:"id"`
	DatasetID string `json:"datasetId,omitempty"`
	CompanyID string `json:"companyId"`
	ShowName  string `json:"showName"`
	DayOfWeek string `json:"dayOfWeek"`
}

// CalendarEvent is a template-side entry in the yearly event calendar.
// World instantiation turns each one into a Planned Show with a concrete date.
type CalendarEvent struct {
	ID        string `json:"id"`
	DatasetID string `json:"datasetId,omitempty"`
	CompanyID string `json:"companyId"`
	Month     int    `json:"month"`
	EventName string `json:"eventName"`
	EventTier string `json:"eventTier"`
}

// Team is a tag team.
type Team struct {
	ID        string   `json:"id"`
	DatasetID string   `json:"datasetId,omitempty"`
	Name      string   `json:"name"`
	MemberIDs []string `json:"memberIds,omitempty"`
}

// Stable is a faction of performers.
type Stable struct {
	ID        string   `json:"id"`
	DatasetID string   `json:"datasetId,omitempty"`
	Name      string   `json:"name"`
	LeaderID  string   `json:"leaderId,omitempty"`
	MemberIDs []string `json:"memberIds,omitempty"`
}

// Sponsor is an advertising partner.
type Sponsor struct {
	ID        string `json:"id"`
	DatasetID string `json:"datasetId,omitempty"`
	Name      string `json:"name"`
	Payout    int64  `json:"payout"`
}

// Relationship is a stored link between two performers. Status strings
// containing "Friend", "Dislike" or "Hate" feed the morale engine.
type Relationship struct {
	ID               string `json:"id"`
	DatasetID        string `json:"datasetId,omitempty"`
	PersonAID        string `json:"personA_Id"`
	PersonBID        string `json:"personB_Id"`
	RelationshipType string `json:"relationshipType"`
	Status           string `json:"status"`
	Notes            string `json:"notes,omitempty"`
}

// PlayerSave is one game in progress, owned by exactly one user.
// CurrentDate only moves forward, one whole day at a time.
type PlayerSave struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	DatasetID       string    `json:"datasetId"`
	SaveName        string    `json:"saveName"`
	LastPlayed      time.Time `json:"lastPlayed"`
	CurrentDate     time.Time `json:"currentDate"`
	PlayerCompanyID string    `json:"playerCompanyId,omitempty"`
}

// Participant is a by-value reference to a save wrestler inside a segment or
// storyline. The name is denormalized so historic cards survive roster edits.
type Participant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Segment is one booked unit of a show. WinnerID is only meaningful for
// matches; an angle never has a winner. Rating is filled in when the show runs.
type Segment struct {
	Type         string        `json:"type"`
	Participants []Participant `json:"participants"`
	WinnerID     string        `json:"winnerId,omitempty"`
	StorylineID  string        `json:"storylineId,omitempty"`
	Rating       int           `json:"rating"`
}

// Show is a save-scoped copy of a CalendarEvent plus everything that happened
// when it ran. Segments is positional: nil entries are unbooked card slots.
type Show struct {
	ID        string     `json:"id"`
	DatasetID string     `json:"datasetId,omitempty"`
	CompanyID string     `json:"companyId"`
	Month     int        `json:"month"`
	EventName string     `json:"eventName"`
	EventTier string     `json:"eventTier"`
	Status    string     `json:"status"`
	Date      time.Time  `json:"date"`
	Segments  []*Segment `json:"segments,omitempty"`
	Rating    int        `json:"rating"`
	Recap     string     `json:"recap,omitempty"`
}

// Storyline is a tracked narrative thread. Heat is clamped to [0,100].
type Storyline struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Participants []Participant `json:"participants"`
	CompanyID    string        `json:"companyId"`
	Heat         int           `json:"heat"`
	Status       string        `json:"status"`
	Beats        []string      `json:"beats"`
}

// CareerEvent is one immutable record of a performer's participation outcome.
// Records are append-only; history is never rewritten.
type CareerEvent struct {
	ID            string    `json:"id"`
	PlayerSaveID  string    `json:"playerSaveId"`
	WrestlerID    string    `json:"wrestlerId"`
	Date          time.Time `json:"date"`
	EventType     string    `json:"eventType"`
	CompanyID     string    `json:"companyId"`
	CompanySize   string    `json:"companySize"`
	SegmentRating int       `json:"segmentRating"`
	OpponentIDs   []string  `json:"opponentIds,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	StorylineID   string    `json:"storylineId,omitempty"`
	ShowID        string    `json:"showId"`
}

// Message is a narrative-generated note to the booker. IsRead is the only
// field the core ever mutates.
type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	SenderName string    `json:"senderName"`
	Body       string    `json:"body"`
	Timestamp  time.Time `json:"timestamp"`
	Type       string    `json:"type"`
	IsRead     bool      `json:"isRead"`
}

// ClampScale bounds a 0-100 scale value (morale, heat).
func ClampScale(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
