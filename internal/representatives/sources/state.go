package sources

import (
	"context"
	"time"

	"civiscope/internal/domain"
	"civiscope/internal/representatives/models"
)

// StateRegistry adapts the state legislature registry: the upper- and
// lower-chamber members for the ZIP code's legislative districts.
type StateRegistry struct {
	Latency time.Duration

	rosters map[string][]stateOfficial
}

// stateOfficial is a raw registry row before normalization.
type stateOfficial struct {
	MemberID       string
	Name           string
	Title          string
	Party          string
	District       string
	Phone          string
	Email          string
	Office         string
	Committees     []string
	VotesCast      int
	BillsSponsored int
}

// NewStateRegistry builds the adapter over the bundled state dataset.
func NewStateRegistry() *StateRegistry {
	return &StateRegistry{rosters: stateRosters}
}

func (r *StateRegistry) Tier() domain.Level { return domain.LevelState }

func (r *StateRegistry) FetchByZip(ctx context.Context, zip string, opts models.Options) ([]models.Representative, error) {
	if err := wait(ctx, r.Latency); err != nil {
		return nil, NewSourceError(ErrorTimeout, r.Tier(), "state registry timed out", err)
	}

	rows := r.rosters[zip]
	reps := make([]models.Representative, 0, len(rows))
	for _, row := range rows {
		rep := models.Representative{
			ID:           "state-" + row.MemberID,
			Name:         row.Name,
			Title:        row.Title,
			Chamber:      models.ChamberState,
			Party:        row.Party,
			Jurisdiction: row.District,
			Contact: models.ContactInfo{
				Phone:  row.Phone,
				Email:  row.Email,
				Office: row.Office,
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
		reps = append(reps, rep)
	}
	return reps, nil
}

var stateRosters = map[string][]stateOfficial{
	"90210": {
		{MemberID: "CA-SD26", Name: "Alicia Monteverde", Title: "State Senator", Party: "Democratic", District: "CA Senate District 26", Phone: "916-651-4026", Email: "senator.monteverde@senate.ca.gov", Office: "State Capitol, Room 4032", Committees: []string{"Housing"}, VotesCast: 312, BillsSponsored: 22},
		{MemberID: "CA-AD51", Name: "Tomás Echeverría", Title: "Assembly Member", Party: "Democratic", District: "CA Assembly District 51", Phone: "916-319-2051", Email: "assemblymember.echeverria@assembly.ca.gov", Office: "State Capitol, Room 5140", Committees: []string{"Transportation"}, VotesCast: 287, BillsSponsored: 16},
	},
	"92004": {
		{MemberID: "CA-SD18", Name: "Roberta Fenwick", Title: "State Senator", Party: "Republican", District: "CA Senate District 18", Phone: "916-651-4018", Email: "senator.fenwick@senate.ca.gov", Office: "State Capitol, Room 3056", Committees: []string{"Agriculture"}, VotesCast: 298, BillsSponsored: 11},
		{MemberID: "CA-AD75", Name: "Dale Worthington", Title: "Assembly Member", Party: "Republican", District: "CA Assembly District 75", Phone: "916-319-2075", Email: "assemblymember.worthington@assembly.ca.gov", Office: "State Capitol, Room 2002", Committees: []string{"Water, Parks, and Wildlife"}, VotesCast: 305, BillsSponsored: 8},
	},
	"95497": {
		{MemberID: "CA-SD02", Name: "Maeve Donnelly", Title: "State Senator", Party: "Democratic", District: "CA Senate District 2", Phone: "916-651-4002", Email: "senator.donnelly@senate.ca.gov", Office: "State Capitol, Room 4035", Committees: []string{"Natural Resources"}, VotesCast: 321, BillsSponsored: 19},
		{MemberID: "CA-AD02", Name: "Hollis Ambrose", Title: "Assembly Member", Party: "Democratic", District: "CA Assembly District 2", Phone: "916-319-2002", Email: "assemblymember.ambrose@assembly.ca.gov", Office: "State Capitol, Room 6031", Committees: []string{"Coastal Protection"}, VotesCast: 294, BillsSponsored: 13},
	},
	"10001": {
		{MemberID: "NY-SD27", Name: "Jerome Okonkwo", Title: "State Senator", Party: "Democratic", District: "NY Senate District 27", Phone: "518-455-2451", Email: "okonkwo@nysenate.gov", Office: "Legislative Office Building, Room 413", Committees: []string{"Cities"}, VotesCast: 276, BillsSponsored: 31},
		{MemberID: "NY-AD75", Name: "Sylvia Bartholomew", Title: "Assembly Member", Party: "Democratic", District: "NY Assembly District 75", Phone: "518-455-5075", Email: "bartholomews@nyassembly.gov", Office: "Legislative Office Building, Room 622", Committees: []string{"Health"}, VotesCast: 268, BillsSponsored: 24},
	},
	"60601": {
		{MemberID: "IL-SD03", Name: "Quentin Marsh", Title: "State Senator", Party: "Democratic", District: "IL Senate District 3", Phone: "217-782-8003", Email: "qmarsh@ilsenate.gov", Office: "Capitol Building, Room 121B", Committees: []string{"Revenue"}, VotesCast: 255, BillsSponsored: 14},
		{MemberID: "IL-HD05", Name: "Adaeze Nwosu", Title: "State Representative", Party: "Democratic", District: "IL House District 5", Phone: "217-782-4005", Email: "anwosu@ilhouse.gov", Office: "Stratton Building, Room 251", Committees: []string{"Labor"}, VotesCast: 249, BillsSponsored: 17},
	},
	"78701": {
		{MemberID: "TX-SD14", Name: "Beatrice Holloway", Title: "State Senator", Party: "Democratic", District: "TX Senate District 14", Phone: "512-463-0114", Email: "beatrice.holloway@senate.texas.gov", Office: "Capitol Extension, Room E1.804", Committees: []string{"Education"}, VotesCast: 231, BillsSponsored: 12},
		{MemberID: "TX-HD49", Name: "Felix Trevino", Title: "State Representative", Party: "Democratic", District: "TX House District 49", Phone: "512-463-0649", Email: "felix.trevino@house.texas.gov", Office: "Capitol Extension, Room E2.908", Committees: []string{"Criminal Jurisprudence"}, VotesCast: 240, BillsSponsored: 9},
	},
	"98101": {
		{MemberID: "WA-LD43-S", Name: "Korrine Ishikawa", Title: "State Senator", Party: "Democratic", District: "WA Legislative District 43", Phone: "360-786-7643", Email: "korrine.ishikawa@leg.wa.gov", Office: "Legislative Building, Room 230", Committees: []string{"Environment, Energy and Technology"}, VotesCast: 262, BillsSponsored: 20},
		{MemberID: "WA-LD43-R", Name: "Porter Gage", Title: "State Representative", Party: "Democratic", District: "WA Legislative District 43", Phone: "360-786-7943", Email: "porter.gage@leg.wa.gov", Office: "John L. O'Brien Building, Room 325", Committees: []string{"Appropriations"}, VotesCast: 258, BillsSponsored: 15},
	},
	"89049": {
		{MemberID: "NV-SD19", Name: "Hank Calloway", Title: "State Senator", Party: "Republican", District: "NV Senate District 19", Phone: "775-684-1419", Email: "hank.calloway@sen.state.nv.us", Office: "Legislative Building, Room 2134", Committees: []string{"Natural Resources"}, VotesCast: 198, BillsSponsored: 6},
		{MemberID: "NV-AD36", Name: "Darlene Prescott", Title: "Assembly Member", Party: "Republican", District: "NV Assembly District 36", Phone: "775-684-8836", Email: "darlene.prescott@asm.state.nv.us", Office: "Legislative Building, Room 3128", Committees: []string{"Government Affairs"}, VotesCast: 205, BillsSponsored: 4},
	},
	"33109": {
		{MemberID: "FL-SD38", Name: "Iris Villanueva", Title: "State Senator", Party: "Republican", District: "FL Senate District 38", Phone: "850-487-5038", Email: "villanueva.iris@flsenate.gov", Office: "Senate Office Building, Room 310", Committees: []string{"Banking and Insurance"}, VotesCast: 221, BillsSponsored: 10},
		{MemberID: "FL-HD113", Name: "Mateo Grimaldi", Title: "State Representative", Party: "Democratic", District: "FL House District 113", Phone: "850-717-5113", Email: "mateo.grimaldi@myfloridahouse.gov", Office: "House Office Building, Room 1102", Committees: []string{"Tourism"}, VotesCast: 216, BillsSponsored: 8},
	},
	"80202": {
		{MemberID: "CO-SD34", Name: "Opal Whitehorse", Title: "State Senator", Party: "Democratic", District: "CO Senate District 34", Phone: "303-866-4862", Email: "opal.whitehorse@coleg.gov", Office: "State Capitol, Room 346", Committees: []string{"Transportation and Energy"}, VotesCast: 244, BillsSponsored: 18},
		{MemberID: "CO-HD05", Name: "Simon Abernathy", Title: "State Representative", Party: "Democratic", District: "CO House District 5", Phone: "303-866-2911", Email: "simon.abernathy@coleg.gov", Office: "State Capitol, Room 307", Committees: []string{"Finance"}, VotesCast: 239, BillsSponsored: 11},
	},
}
