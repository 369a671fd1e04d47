package pmm

import (
	"context"

	"github.com/kuitang/pmm-pages/internal/pageobjects"
)

const programEngagementObject = "ProgramEngagement__c"

var (
	ProgramEngagementListingKey = pageobjects.Key{PageType: pageobjects.Listing, ObjectName: "ProgramEngagement"}
	NewProgramEngagementKey     = pageobjects.Key{PageType: pageobjects.NewPage, ObjectName: programEngagementObject}
	ProgramEngagementDetailKey  = pageobjects.Key{PageType: pageobjects.Details, ObjectName: programEngagementObject}
)

// ProgramEngagementListingPage is the Program Engagement list view. It uses
// the generic listing check unchanged; note the list URL object name is the
// literal "None".
type ProgramEngagementListingPage struct {
	Page
	*pageobjects.ListingPage
}

func newProgramEngagementListingPage(env pageobjects.Env) pageobjects.Page {
	listing := pageobjects.NewListingPage(ProgramEngagementListingKey, env)
	listing.ObjectName = "None"
	return &ProgramEngagementListingPage{Page: newPage(env), ListingPage: listing}
}

// NewProgramEngagementPage is the New Program Engagement modal.
type NewProgramEngagementPage struct {
	Page
	*pageobjects.NewRecordPage
}

func newNewProgramEngagementPage(env pageobjects.Env) pageobjects.Page {
	return &NewProgramEngagementPage{
		Page:          newPage(env),
		NewRecordPage: pageobjects.NewNewRecordPage(NewProgramEngagementKey, env),
	}
}

// IsCurrentPage waits for the new-record URL, then checks it belongs to
// Program Engagement.
func (p *NewProgramEngagementPage) IsCurrentPage(ctx context.Context) error {
	kw := p.Env.Keywords
	if err := kw.WaitUntilLocationContains(ctx, "/new", p.Env.Timeout, "Record view did not open in 1 min"); err != nil {
		return err
	}
	return kw.LocationShouldContain(ctx,
		"/lightning/o/"+programEngagementObject+"/",
		"Section title is not 'New Program Engagement' as expected",
	)
}

// ProgramEngagementDetailPage is a Program Engagement record view.
type ProgramEngagementDetailPage struct {
	Page
	*pageobjects.DetailPage
}

func newProgramEngagementDetailPage(env pageobjects.Env) pageobjects.Page {
	return &ProgramEngagementDetailPage{
		Page:       newPage(env),
		DetailPage: pageobjects.NewDetailPage(ProgramEngagementDetailKey, env),
	}
}

// IsCurrentPage waits for a record view URL, then checks it belongs to
// Program Engagement.
func (p *ProgramEngagementDetailPage) IsCurrentPage(ctx context.Context) error {
	kw := p.Env.Keywords
	if err := kw.WaitUntilLocationContains(ctx, "/view", p.Env.Timeout, "Detail view did not open in 1 min"); err != nil {
		return err
	}
	return kw.LocationShouldContain(ctx,
		"/lightning/r/"+programEngagementObject+"/",
		"Current page is not a Program Engagement record detail view",
	)
}
