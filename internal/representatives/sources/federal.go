package sources

import (
	"context"
	"time"

	"civiscope/internal/domain"
	"civiscope/internal/representatives/models"
)

// FederalRegistry adapts the federal legislative registry: two senators per
// state plus the house member for the ZIP code's congressional district.
type FederalRegistry struct {
	Latency time.Duration

	districts map[string]federalDistrict
	senators  map[string][]federalOfficial
	house     map[string]federalOfficial
}

// federalDistrict is the registry's request shape: ZIP codes resolve to a
// state and congressional district before the roster lookup.
type federalDistrict struct {
	State    string
	District string
}

// federalOfficial is a raw registry row before normalization.
type federalOfficial struct {
	BioID          string
	Name           string
	Party          string
	Phone          string
	Website        string
	Office         string
	Committees     []string
	VotesCast      int
	BillsSponsored int
}

// NewFederalRegistry builds the adapter over the bundled federal dataset.
func NewFederalRegistry() *FederalRegistry {
	return &FederalRegistry{
		districts: federalDistricts,
		senators:  federalSenators,
		house:     federalHouse,
	}
}

func (r *FederalRegistry) Tier() domain.Level { return domain.LevelFederal }

// FetchByZip shapes the request (ZIP to state/district), fetches the raw
// rows, and normalizes them into tagged Representative records. A ZIP with
// no registry coverage yields an empty roster, which is a valid answer.
func (r *FederalRegistry) FetchByZip(ctx context.Context, zip string, opts models.Options) ([]models.Representative, error) {
	if err := wait(ctx, r.Latency); err != nil {
		return nil, NewSourceError(ErrorTimeout, r.Tier(), "federal registry timed out", err)
	}

	dist, ok := r.districts[zip]
	if !ok {
		return []models.Representative{}, nil
	}

	reps := make([]models.Representative, 0, 3)
	for _, row := range r.senators[dist.State] {
		reps = append(reps, r.normalize(row, "U.S. Senator", dist.State, opts))
	}
	if row, ok := r.house[dist.District]; ok {
		reps = append(reps, r.normalize(row, "U.S. Representative", dist.District, opts))
	}
	return reps, nil
}

func (r *FederalRegistry) normalize(row federalOfficial, title, jurisdiction string, opts models.Options) models.Representative {
	rep := models.Representative{
		ID:           "fed-" + row.BioID,
		Name:         row.Name,
		Title:        title,
		Chamber:      models.ChamberFederal,
		Party:        row.Party,
		Jurisdiction: jurisdiction,
		Contact: models.ContactInfo{
			Phone:   row.Phone,
			Website: row.Website,
			Office:  row.Office,
		},
		SourceTier: r.Tier(),
	}
	if opts.IncludeCommitteeInfo {
		rep.Committees = row.Committees
	}
	if opts.IncludeVotingRecords {
		rep.VotesCast = row.VotesCast
	}
	if opts.IncludeBillData {
		rep.BillsSponsored = row.BillsSponsored
	}
	return rep
}

// wait sleeps for the adapter's simulated registry latency, honoring ctx.
func wait(ctx context.Context, latency time.Duration) error {
	if latency <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var federalDistricts = map[string]federalDistrict{
	"90210": {State: "CA", District: "CA-30"},
	"92004": {State: "CA", District: "CA-48"},
	"95497": {State: "CA", District: "CA-02"},
	"10001": {State: "NY", District: "NY-12"},
	"60601": {State: "IL", District: "IL-07"},
	"78701": {State: "TX", District: "TX-37"},
	"98101": {State: "WA", District: "WA-07"},
	"89049": {State: "NV", District: "NV-02"},
	"33109": {State: "FL", District: "FL-27"},
	"80202": {State: "CO", District: "CO-01"},
}

var federalSenators = map[string][]federalOfficial{
	"CA": {
		{BioID: "S401", Name: "Elena Vasquez", Party: "Democratic", Phone: "202-224-0101", Website: "https://vasquez.senate.gov", Office: "112 Hart Senate Office Building", Committees: []string{"Judiciary", "Energy and Natural Resources"}, VotesCast: 512, BillsSponsored: 38},
		{BioID: "S402", Name: "Marcus Whitfield", Party: "Democratic", Phone: "202-224-0102", Website: "https://whitfield.senate.gov", Office: "331 Russell Senate Office Building", Committees: []string{"Armed Services"}, VotesCast: 498, BillsSponsored: 21},
	},
	"NY": {
		{BioID: "S411", Name: "Dana Okafor", Party: "Democratic", Phone: "202-224-0111", Website: "https://okafor.senate.gov", Office: "476 Russell Senate Office Building", Committees: []string{"Finance"}, VotesCast: 520, BillsSponsored: 44},
		{BioID: "S412", Name: "Peter Lindqvist", Party: "Democratic", Phone: "202-224-0112", Website: "https://lindqvist.senate.gov", Office: "B40 Dirksen Senate Office Building", Committees: []string{"Banking, Housing, and Urban Affairs"}, VotesCast: 507, BillsSponsored: 29},
	},
	"IL": {
		{BioID: "S421", Name: "Rosa Camarillo", Party: "Democratic", Phone: "202-224-0121", Website: "https://camarillo.senate.gov", Office: "524 Hart Senate Office Building", Committees: []string{"Agriculture"}, VotesCast: 489, BillsSponsored: 17},
		{BioID: "S422", Name: "Henry Blackwood", Party: "Republican", Phone: "202-224-0122", Website: "https://blackwood.senate.gov", Office: "104 Hart Senate Office Building", Committees: []string{"Commerce, Science, and Transportation"}, VotesCast: 501, BillsSponsored: 25},
	},
	"TX": {
		{BioID: "S431", Name: "Caleb Ashford", Party: "Republican", Phone: "202-224-0131", Website: "https://ashford.senate.gov", Office: "127A Russell Senate Office Building", Committees: []string{"Judiciary"}, VotesCast: 495, BillsSponsored: 33},
		{BioID: "S432", Name: "Miriam Castell", Party: "Republican", Phone: "202-224-0132", Website: "https://castell.senate.gov", Office: "517 Hart Senate Office Building", Committees: []string{"Foreign Relations"}, VotesCast: 511, BillsSponsored: 19},
	},
	"WA": {
		{BioID: "S441", Name: "June Takahashi", Party: "Democratic", Phone: "202-224-0141", Website: "https://takahashi.senate.gov", Office: "154 Russell Senate Office Building", Committees: []string{"Appropriations"}, VotesCast: 503, BillsSponsored: 41},
		{BioID: "S442", Name: "Oren Michaels", Party: "Democratic", Phone: "202-224-0142", Website: "https://michaels.senate.gov", Office: "511 Dirksen Senate Office Building", Committees: []string{"Veterans' Affairs"}, VotesCast: 516, BillsSponsored: 22},
	},
	"NV": {
		{BioID: "S451", Name: "Theresa Marlowe", Party: "Democratic", Phone: "202-224-0151", Website: "https://marlowe.senate.gov", Office: "313 Hart Senate Office Building", Committees: []string{"Energy and Natural Resources"}, VotesCast: 492, BillsSponsored: 15},
		{BioID: "S452", Name: "Gilbert Reyes", Party: "Republican", Phone: "202-224-0152", Website: "https://reyes.senate.gov", Office: "324 Hart Senate Office Building", Committees: []string{"Indian Affairs"}, VotesCast: 488, BillsSponsored: 12},
	},
	"FL": {
		{BioID: "S461", Name: "Vivian Alcantara", Party: "Republican", Phone: "202-224-0161", Website: "https://alcantara.senate.gov", Office: "716 Hart Senate Office Building", Committees: []string{"Small Business"}, VotesCast: 509, BillsSponsored: 27},
		{BioID: "S462", Name: "Douglas Pemberton", Party: "Republican", Phone: "202-224-0162", Website: "https://pemberton.senate.gov", Office: "284 Russell Senate Office Building", Committees: []string{"Budget"}, VotesCast: 497, BillsSponsored: 18},
	},
	"CO": {
		{BioID: "S471", Name: "Naomi Sandoval", Party: "Democratic", Phone: "202-224-0171", Website: "https://sandoval.senate.gov", Office: "261 Russell Senate Office Building", Committees: []string{"Health, Education, Labor, and Pensions"}, VotesCast: 514, BillsSponsored: 36},
		{BioID: "S472", Name: "Ward Ellington", Party: "Democratic", Phone: "202-224-0172", Website: "https://ellington.senate.gov", Office: "B85 Russell Senate Office Building", Committees: []string{"Environment and Public Works"}, VotesCast: 506, BillsSponsored: 24},
	},
}

var federalHouse = map[string]federalOfficial{
	"CA-30": {BioID: "H1030", Name: "Priya Raghavan", Party: "Democratic", Phone: "202-225-0301", Website: "https://raghavan.house.gov", Office: "2312 Rayburn House Office Building", Committees: []string{"Energy and Commerce"}, VotesCast: 873, BillsSponsored: 14},
	"CA-48": {BioID: "H1048", Name: "Stephen Corliss", Party: "Republican", Phone: "202-225-0481", Website: "https://corliss.house.gov", Office: "1027 Longworth House Office Building", Committees: []string{"Natural Resources"}, VotesCast: 861, BillsSponsored: 9},
	"CA-02": {BioID: "H1002", Name: "Freya Nightingale", Party: "Democratic", Phone: "202-225-0021", Website: "https://nightingale.house.gov", Office: "406 Cannon House Office Building", Committees: []string{"Transportation and Infrastructure"}, VotesCast: 880, BillsSponsored: 11},
	"NY-12": {BioID: "H2012", Name: "Aaron Feldstein", Party: "Democratic", Phone: "202-225-1201", Website: "https://feldstein.house.gov", Office: "2141 Rayburn House Office Building", Committees: []string{"Oversight and Accountability"}, VotesCast: 869, BillsSponsored: 16},
	"IL-07": {BioID: "H3007", Name: "Latasha Brown-Oyelaran", Party: "Democratic", Phone: "202-225-0701", Website: "https://brownoyelaran.house.gov", Office: "1502 Longworth House Office Building", Committees: []string{"Financial Services"}, VotesCast: 858, BillsSponsored: 13},
	"TX-37": {BioID: "H4037", Name: "Emilio Barrera", Party: "Democratic", Phone: "202-225-3701", Website: "https://barrera.house.gov", Office: "117 Cannon House Office Building", Committees: []string{"Science, Space, and Technology"}, VotesCast: 876, BillsSponsored: 10},
	"WA-07": {BioID: "H5007", Name: "Ingrid Solheim", Party: "Democratic", Phone: "202-225-0702", Website: "https://solheim.house.gov", Office: "319 Cannon House Office Building", Committees: []string{"Education and the Workforce"}, VotesCast: 882, BillsSponsored: 18},
	"NV-02": {BioID: "H6002", Name: "Russell Tapper", Party: "Republican", Phone: "202-225-0201", Website: "https://tapper.house.gov", Office: "304 Cannon House Office Building", Committees: []string{"Ways and Means"}, VotesCast: 854, BillsSponsored: 7},
	"FL-27": {BioID: "H7027", Name: "Carmen Delgado-Ruiz", Party: "Republican", Phone: "202-225-2701", Website: "https://delgadoruiz.house.gov", Office: "1616 Longworth House Office Building", Committees: []string{"Foreign Affairs"}, VotesCast: 867, BillsSponsored: 12},
	"CO-01": {BioID: "H8001", Name: "Graham Ostrowski", Party: "Democratic", Phone: "202-225-0101", Website: "https://ostrowski.house.gov", Office: "2111 Rayburn House Office Building", Committees: []string{"Judiciary"}, VotesCast: 871, BillsSponsored: 15},
}
