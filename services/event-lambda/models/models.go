package models

// GraphEventFields is the explicit field set requested from the Graph API
var GraphEventFields = []string{
	"id",
	"name",
	"start_time",
	"end_time",
	"place",
	"cover",
	"ticket_uri",
}

// GraphEventsLimit caps the number of upcoming events fetched per request
const GraphEventsLimit = 12

// EventURLPrefix is the public Facebook URL prefix of an event page
const EventURLPrefix = "https://www.facebook.com/events/"

// ============================================================
// Upstream (Graph API) records
// ============================================================

// GraphPlace is the optional venue of a Graph event
type GraphPlace struct {
	Name string `json:"name"`
}

// GraphCover is the optional cover photo of a Graph event
type GraphCover struct {
	Source string `json:"source"`
}

// GraphEvent is one record of the page's events collection
type GraphEvent struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	StartTime string      `json:"start_time"`
	EndTime   string      `json:"end_time"`
	Place     *GraphPlace `json:"place"`
	Cover     *GraphCover `json:"cover"`
	TicketURI string      `json:"ticket_uri"`
}

// GraphPaging holds the cursors of a Graph collection; only the first page is used
type GraphPaging struct {
	Next     string `json:"next"`
	Previous string `json:"previous"`
}

// GraphEventsPage is the body of a successful events collection response
type GraphEventsPage struct {
	Data   []GraphEvent `json:"data"`
	Paging *GraphPaging `json:"paging"`
}

// HasNext reports whether the upstream advertised another page
func (p *GraphEventsPage) HasNext() bool {
	return p.Paging != nil && p.Paging.Next != ""
}

// ============================================================
// Public contract
// ============================================================

// PageEvent is the simplified event shape served to the front-end
type PageEvent struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Place     string `json:"place"`
	Cover     string `json:"cover"`
	TicketURI string `json:"ticket_uri"`
	URL       string `json:"url"`
}

// PageEventsResponse is the success envelope
type PageEventsResponse struct {
	OK        bool        `json:"ok"`
	UpdatedAt string      `json:"updated_at"`
	Events    []PageEvent `json:"events"`
}

// ToPageEvent flattens a Graph record, defaulting every absent field to ""
func (e GraphEvent) ToPageEvent() PageEvent {
	ev := PageEvent{
		ID:        e.ID,
		Name:      e.Name,
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
		TicketURI: e.TicketURI,
		URL:       EventURLPrefix + e.ID + "/",
	}
	if e.Place != nil {
		ev.Place = e.Place.Name
	}
	if e.Cover != nil {
		ev.Cover = e.Cover.Source
	}
	return ev
}
