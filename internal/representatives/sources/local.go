package sources

import (
	"context"
	"time"

	"civiscope/internal/domain"
	"civiscope/internal/representatives/models"
)

// LocalRegistry adapts the municipal and county officials registry. Only
// incorporated areas carry municipal rows; the coverage resolver keeps this
// tier from being queried at all for areas without local representation.
type LocalRegistry struct {
	Latency time.Duration

	rosters map[string][]localOfficial
}

type localOfficial struct {
	OfficialID string
	Name       string
	Title      string
	Party      string
	Body       string
	Municipal  bool
	Phone      string
	Email      string
	Office     string
	Committees []string
}

// NewLocalRegistry builds the adapter over the bundled local dataset.
func NewLocalRegistry() *LocalRegistry {
	return &LocalRegistry{rosters: localRosters}
}

func (r *LocalRegistry) Tier() domain.Level { return domain.LevelLocal }

func (r *LocalRegistry) FetchByZip(ctx context.Context, zip string, opts models.Options) ([]models.Representative, error) {
	if err := wait(ctx, r.Latency); err != nil {
		return nil, NewSourceError(ErrorTimeout, r.Tier(), "local registry timed out", err)
	}

	rows := r.rosters[zip]
	reps := make([]models.Representative, 0, len(rows))
	for _, row := range rows {
		chamber := models.ChamberCounty
		if row.Municipal {
			chamber = models.ChamberMunicipal
		}
		rep := models.Representative{
			ID:           "local-" + row.OfficialID,
			Name:         row.Name,
			Title:        row.Title,
			Chamber:      chamber,
			Party:        row.Party,
			Jurisdiction: row.Body,
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
		reps = append(reps, rep)
	}
	return reps, nil
}

var localRosters = map[string][]localOfficial{
	"90210": {
		{OfficialID: "BH-MAYOR", Name: "Celeste Harrington", Title: "Mayor", Party: "Nonpartisan", Body: "City of Beverly Hills", Municipal: true, Phone: "310-285-1013", Email: "mayor@beverlyhills.org", Office: "455 N Rexford Dr", Committees: []string{"Finance Committee"}},
		{OfficialID: "BH-CC2", Name: "Armand Desrosiers", Title: "Council Member", Party: "Nonpartisan", Body: "City of Beverly Hills", Municipal: true, Phone: "310-285-1014", Email: "adesrosiers@beverlyhills.org", Office: "455 N Rexford Dr", Committees: []string{"Planning Liaison"}},
		{OfficialID: "LAC-D3", Name: "Yolanda Espinoza", Title: "County Supervisor", Party: "Democratic", Body: "Los Angeles County Board of Supervisors, District 3", Phone: "213-974-3333", Email: "thirddistrict@bos.lacounty.gov", Office: "500 W Temple St, Room 821", Committees: []string{"Homelessness Initiative"}},
	},
	"10001": {
		{OfficialID: "NYC-MAYOR", Name: "Desmond Achebe", Title: "Mayor", Party: "Democratic", Body: "City of New York", Municipal: true, Phone: "212-788-3000", Email: "mayor@cityhall.nyc.gov", Office: "City Hall", Committees: nil},
		{OfficialID: "NYC-CD3", Name: "Renata Kowalczyk", Title: "Council Member", Party: "Democratic", Body: "New York City Council, District 3", Municipal: true, Phone: "212-564-7757", Email: "district3@council.nyc.gov", Office: "250 Broadway, Suite 1803", Committees: []string{"Land Use"}},
	},
	"60601": {
		{OfficialID: "CHI-MAYOR", Name: "Patrice Boudreaux", Title: "Mayor", Party: "Democratic", Body: "City of Chicago", Municipal: true, Phone: "312-744-3300", Email: "mayor@cityofchicago.org", Office: "121 N LaSalle St, Room 507", Committees: nil},
		{OfficialID: "CHI-W42", Name: "Grant Fitzwilliam", Title: "Alderman", Party: "Democratic", Body: "Chicago City Council, Ward 42", Municipal: true, Phone: "312-642-4242", Email: "ward42@cityofchicago.org", Office: "111 W Washington St, Suite 1920", Committees: []string{"Zoning"}},
		{OfficialID: "COOK-D2", Name: "Shirley Vanterpool", Title: "County Commissioner", Party: "Democratic", Body: "Cook County Board of Commissioners, District 2", Phone: "312-603-3350", Email: "district2@cookcountyil.gov", Office: "118 N Clark St, Room 567", Committees: []string{"Health and Hospitals"}},
	},
	"78701": {
		{OfficialID: "ATX-MAYOR", Name: "Rosalind Carver", Title: "Mayor", Party: "Nonpartisan", Body: "City of Austin", Municipal: true, Phone: "512-978-2100", Email: "mayor@austintexas.gov", Office: "301 W 2nd St", Committees: nil},
		{OfficialID: "ATX-D9", Name: "Julian Marchetti", Title: "Council Member", Party: "Nonpartisan", Body: "Austin City Council, District 9", Municipal: true, Phone: "512-978-2109", Email: "district9@austintexas.gov", Office: "301 W 2nd St", Committees: []string{"Mobility Committee"}},
	},
	"98101": {
		{OfficialID: "SEA-MAYOR", Name: "Edwin Nakamura", Title: "Mayor", Party: "Nonpartisan", Body: "City of Seattle", Municipal: true, Phone: "206-684-4000", Email: "mayor@seattle.gov", Office: "600 4th Ave, 7th Floor", Committees: nil},
		{OfficialID: "SEA-D7", Name: "Bridget O'Callahan", Title: "Council Member", Party: "Nonpartisan", Body: "Seattle City Council, District 7", Municipal: true, Phone: "206-684-8807", Email: "district7@seattle.gov", Office: "600 4th Ave, 2nd Floor", Committees: []string{"Public Safety"}},
		{OfficialID: "KING-D4", Name: "Mona Delacroix", Title: "County Council Member", Party: "Nonpartisan", Body: "King County Council, District 4", Phone: "206-477-1004", Email: "district4@kingcounty.gov", Office: "516 3rd Ave, Room 1200", Committees: []string{"Regional Transit"}},
	},
	"80202": {
		{OfficialID: "DEN-MAYOR", Name: "Silas Thornbury", Title: "Mayor", Party: "Nonpartisan", Body: "City and County of Denver", Municipal: true, Phone: "720-865-9000", Email: "mayor@denvergov.org", Office: "1437 Bannock St, Room 350", Committees: nil},
		{OfficialID: "DEN-D10", Name: "Camille Verhoeven", Title: "Council Member", Party: "Nonpartisan", Body: "Denver City Council, District 10", Municipal: true, Phone: "720-337-7710", Email: "district10@denvergov.org", Office: "1437 Bannock St, Room 451", Committees: []string{"Land Use and Transportation"}},
	},
	"33109": {
		{OfficialID: "MDC-D5", Name: "Octavio Ferreira", Title: "County Commissioner", Party: "Republican", Body: "Miami-Dade Board of County Commissioners, District 5", Phone: "305-375-5924", Email: "district5@miamidade.gov", Office: "111 NW 1st St, Suite 220", Committees: []string{"Infrastructure"}},
	},
}
