package api

import "time"

// DateLayout is the wire format of calendar dates such as a purchase date.
const DateLayout = "2006-01-02"

type Contribution struct {
	ID        string    `json:"id"`
	Member    string    `json:"member"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
	Note      string    `json:"note,omitempty"`
	Period    string    `json:"period"`
}

type Expenditure struct {
	ID          string    `json:"id"`
	Item        string    `json:"item"`
	Amount      int64     `json:"amount"`
	PurchasedOn string    `json:"purchased_on"` // DateLayout
	RecordedBy  string    `json:"recorded_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// RecordContributionRequest records a payment. Member defaults to the
// caller; only admins may name someone else.
type RecordContributionRequest struct {
	Member string `json:"member,omitempty"`
	Amount int64  `json:"amount"`
	Note   string `json:"note,omitempty"`
}

type RecordContributionResponse struct {
	Contribution *Contribution `json:"contribution"`
}

type RecordExpenditureRequest struct {
	Item        string `json:"item"`
	Amount      int64  `json:"amount"`
	PurchasedOn string `json:"purchased_on"` // DateLayout
}

type RecordExpenditureResponse struct {
	Expenditure *Expenditure `json:"expenditure"`
}

// ListContributionsRequest filters the contribution history. Empty fields
// match everything. Period uses the YYYY-MM form.
type ListContributionsRequest struct {
	Member string `json:"member,omitempty"`
	Period string `json:"period,omitempty"`
}

type ListContributionsResponse struct {
	Contributions []*Contribution `json:"contributions"`
}

type ListExpendituresRequest struct{}

type ListExpendituresResponse struct {
	Expenditures []*Expenditure `json:"expenditures"`
}

type ListMembersRequest struct{}

type ListMembersResponse struct {
	Members []*Member `json:"members"`
}

// GetReportRequest asks for a report. Mode is "lifetime" or "period" and
// defaults to the server setting; Period defaults to the current month.
type GetReportRequest struct {
	Mode   string `json:"mode,omitempty"`
	Period string `json:"period,omitempty"`
}

type MemberBalance struct {
	Name        string `json:"name"`
	Obligation  int64  `json:"obligation"`
	Contributed int64  `json:"contributed"`
	Balance     int64  `json:"balance"`
	Shortfall   int64  `json:"shortfall"`
	Status      string `json:"status"`
}

type PeriodBalance struct {
	Name        string `json:"name"`
	Rate        int64  `json:"rate"`
	Contributed int64  `json:"contributed"`
	Shortfall   int64  `json:"shortfall"`
	Status      string `json:"status"`
}

type SeriesPoint struct {
	Date       string `json:"date"` // DateLayout
	Delta      int64  `json:"delta"`
	Cumulative int64  `json:"cumulative"`
}

type GetReportResponse struct {
	Mode           string           `json:"mode"`
	Period         string           `json:"period"`
	ElapsedPeriods int64            `json:"elapsed_periods,omitempty"`
	Obligation     int64            `json:"obligation"`
	Members        []*MemberBalance `json:"members"`
	PeriodMembers  []*PeriodBalance `json:"period_members,omitempty"`
	TotalIn        int64            `json:"total_in"`
	TotalOut       int64            `json:"total_out"`
	CashPosition   int64            `json:"cash_position"`
	TimeSeries     []*SeriesPoint   `json:"time_series"`
	Unrostered     []string         `json:"unrostered,omitempty"`
}
