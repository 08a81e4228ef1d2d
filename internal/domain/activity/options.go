package activity

import "time"

// DefaultPerPage is the page size used when none is given.
const DefaultPerPage = 50

// ListOptions provides filtering options for listing activity.
type ListOptions struct {
	UserID string
	// Action matches entries whose action contains this substring.
	Action string
	Start  *time.Time
	// End is inclusive through the end of that day.
	End     *time.Time
	Page    int
	PerPage int
}

func (o ListOptions) normalized() ListOptions {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.PerPage < 1 {
		o.PerPage = DefaultPerPage
	}
	if o.End != nil {
		y, m, d := o.End.Date()
		end := time.Date(y, m, d, 23, 59, 59, 0, o.End.Location())
		o.End = &end
	}
	return o
}
