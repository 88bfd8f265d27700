package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func domesticPrivateDoc() []string {
	return []string{
		"Company Details",
		"Name",
		"ACME TRADING LTD",
		"File No",
		"C123456",
		"Status",
		"Live",
		"Date Incorporated",
		"12/03/2015",
		"Business Details",
		"Business Name",
		"ACME RETAIL",
		"Business Registration No",
		"C07048459",
		"Nature of Business",
		"Retail of household goods",
		"Principal Place of Business",
		"ROYAL ROAD, CUREPIPE",
		"Date Registered",
		"15/03/2015",
		"Office Bearers",
		"Position",
		"Name",
		"Address",
		"Date Appointed",
		"DIRECTOR",
		"JOHN PAUL MARTIN",
		"ROYAL ROAD, CUREPIPE",
		"01/04/2015",
		"SECRETARY",
		"ANIL RAMDIN",
		"5 OLD MOKA ROAD, MOKA",
		"01/04/2015",
		"Shareholders",
		"Name",
		"Address",
		"No. of Shares",
		"Currency",
		"MUR",
		"JOHN PAUL MARTIN",
		"ROYAL ROAD, CUREPIPE",
		"500",
		"MARIE CLAIRE MARTIN",
		"OLD MOKA ROAD, MOKA",
		"500",
		"Annual Return Filed",
		"Year",
		"Date Filed",
		"2022",
		"15/01/2023",
		"2023",
		"20/01/2024",
		"Summary of Financial Statements",
		"Period From",
		"Period To",
		"MUR",
		"01/07/2021",
		"30/06/2022",
		"Statement of Profit or Loss",
		"MUR",
		"Turnover",
		"2,500,000",
		"Gross Profit",
		"800,000",
		"Net Profit",
		"350,000",
		"Particulars of Stated Capital",
		"Share Class",
		"Currency",
		"MUR",
		"ORDINARY SHARES",
		"1,000",
		"100,000",
		"Balance Sheet",
		"MUR",
		"CURRENT ASSETS",
		"Cash at Bank",
		"120,000",
		"Total",
		"120,000",
		"EQUITY",
		"Stated Capital",
		"100,000",
		"Total",
		"100,000",
		"Charges",
		"Charge Holder",
		"Type",
		"Date Created",
		"MUR",
		"FIXED",
		"BRAMER BANKING CORP LTD",
		"2,000,000",
		"10/05/2018",
	}
}

func TestExtractDomesticPrivate(t *testing.T) {
	rec, err := Extract(domesticPrivateDoc(), CategoryDomestic, NaturePrivate)
	require.NoError(t, err)

	assert.Equal(t, "ACME TRADING LTD", rec.Identity.Name)
	assert.Equal(t, "C123456", rec.Identity.FileNumber)
	assert.Equal(t, "123456", rec.Identity.CompanyNumber)
	assert.Equal(t, "C", rec.Identity.CompanyType)
	assert.Equal(t, "12/03/2015", rec.Identity.Incorporated)

	require.NotNil(t, rec.Business)
	assert.Equal(t, "ACME RETAIL", rec.Business.BusinessName)
	assert.Equal(t, "C07048459", rec.Business.BRN)

	require.Len(t, rec.OfficeBearers, 2)
	assert.Equal(t, OfficeBearer{
		Position: "DIRECTOR", Name: "JOHN PAUL MARTIN",
		Address: "ROYAL ROAD, CUREPIPE", Appointed: "01/04/2015",
	}, rec.OfficeBearers[0])

	require.Len(t, rec.Shareholders, 2)
	assert.Equal(t, int64(500), rec.Shareholders[0].Shares)
	assert.Equal(t, "MUR", rec.Shareholders[0].Currency)

	require.Len(t, rec.AnnualReturns, 2)
	assert.Equal(t, AnnualReturn{Year: 2022, Filed: "15/01/2023"}, rec.AnnualReturns[0])

	require.Len(t, rec.Financials, 1)
	assert.Equal(t, "01/07/2021", rec.Financials[0].PeriodFrom)
	assert.Equal(t, "30/06/2022", rec.Financials[0].PeriodTo)

	require.NotNil(t, rec.Profit)
	assert.Equal(t, int64(2500000), rec.Profit.Turnover)
	assert.Equal(t, int64(350000), rec.Profit.NetProfit)

	require.Len(t, rec.StatedCapital, 1)
	assert.Equal(t, StatedCapitalEntry{
		Class: "ORDINARY SHARES", Currency: "MUR", SharesIssued: 1000, Amount: 100000,
	}, rec.StatedCapital[0])

	require.NotNil(t, rec.Balance)
	require.Len(t, rec.Balance.Assets, 1)
	assert.Equal(t, int64(120000), rec.Balance.Assets[0].Total)
	require.Len(t, rec.Balance.Assets[0].Items, 1)
	assert.Equal(t, AccountItem{Label: "Cash at Bank", Amount: 120000}, rec.Balance.Assets[0].Items[0])
	require.Len(t, rec.Balance.Liabilities, 1)
	assert.Equal(t, "EQUITY", rec.Balance.Liabilities[0].Label)

	require.Len(t, rec.Charges, 1)
	assert.Equal(t, Charge{
		Kind: "FIXED", Holder: "BRAMER BANKING CORP LTD",
		Amount: 2000000, Currency: "MUR", Created: "10/05/2018",
	}, rec.Charges[0])

	// Supported-but-absent sections are empty collections, not nil.
	assert.NotNil(t, rec.Liquidators)
	assert.Empty(t, rec.Liquidators)
	assert.NotNil(t, rec.Objections)
	assert.Empty(t, rec.Objections)
}

func TestCategoryDispatchSectionSets(t *testing.T) {
	identity := func(name, fileNo string) []string {
		return []string{
			"Company Details",
			"Name", name,
			"File No", fileNo,
			"Status", "Live",
			"Date Incorporated", "05/06/2010",
		}
	}

	tests := []struct {
		name     string
		lines    []string
		category Category
		nature   Nature
		want     []string
	}{
		{
			name:     "domestic private",
			lines:    identity("ACME TRADING LTD", "C123456"),
			category: CategoryDomestic,
			nature:   NaturePrivate,
			want: []string{
				SectionIdentity, SectionBusiness, SectionCertificates,
				SectionOfficeBearers, SectionShareholders, SectionAnnualReturns,
				SectionFinancialSummary, SectionProfitStatement, SectionStatedCapital,
				SectionBalanceSheet, SectionCharges, SectionLiquidators,
				SectionReceivers, SectionAdministrators, SectionDetails,
				SectionObjections,
			},
		},
		{
			name:     "domestic civil societe civile",
			lines:    identity("SOCIETE FAMILIALE HOSANY", "S7891"),
			category: CategoryDomestic,
			nature:   NatureCivil,
			want: []string{
				SectionIdentity, SectionOfficeBearers, SectionMembers,
				SectionDetails, SectionObjections,
			},
		},
		{
			name: "domestic civil societe commerciale",
			lines: append(identity("SOCIETE COMMERCIALE HOSANY", "S7892"),
				"Business Details",
				"Business Registration No", "C07048460",
			),
			category: CategoryDomestic,
			nature:   NatureCivil,
			want: []string{
				SectionIdentity, SectionBusiness, SectionOfficeBearers,
				SectionShareholders, SectionStatedCapital, SectionDetails,
				SectionObjections,
			},
		},
		{
			name:     "authorised company",
			lines:    identity("OFFSHORE HOLDINGS INC", "A20519"),
			category: CategoryAuthorised,
			nature:   "",
			want: []string{
				SectionIdentity, SectionOfficeBearers, SectionShareholders,
				SectionStatedCapital, SectionDetails, SectionObjections,
			},
		},
		{
			name:     "global business company",
			lines:    identity("EQUATOR CAPITAL PARTNERS", "GB2047"),
			category: CategoryGlobal,
			nature:   "",
			want: []string{
				SectionIdentity, SectionCertificates, SectionOfficeBearers,
				SectionShareholders, SectionStatedCapital, SectionFinancialSummary,
				SectionProfitStatement, SectionBalanceSheet, SectionCharges,
				SectionDetails, SectionObjections,
			},
		},
		{
			name:     "foreign dom branch",
			lines:    identity("GLOBEX ENGINEERING PLC", "F1205"),
			category: CategoryForeignBranch,
			nature:   "",
			want: []string{
				SectionIdentity, SectionBusiness, SectionOfficeBearers,
				SectionCharges, SectionDetails, SectionObjections,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := Extract(tt.lines, tt.category, tt.nature)
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.want, rec.Sections())
		})
	}
}

func TestExtractZipTruncationInSection(t *testing.T) {
	// 3 positions, 3 names, 2 addresses, 3 dates: exactly 2 assembled rows.
	lines := []string{
		"Company Details",
		"Name", "ACME TRADING LTD",
		"File No", "C123456",
		"Status", "Live",
		"Date Incorporated", "12/03/2015",
		"Office Bearers",
		"DIRECTOR",
		"JOHN PAUL MARTIN",
		"ROYAL ROAD, CUREPIPE",
		"01/04/2015",
		"DIRECTOR",
		"MARIE CLAIRE MARTIN",
		"OLD MOKA ROAD, MOKA",
		"02/04/2015",
		"SECRETARY",
		"ANIL RAMDIN",
		"03/04/2015",
	}

	rec, err := Extract(lines, CategoryDomestic, NaturePrivate)
	require.NoError(t, err)
	require.Len(t, rec.OfficeBearers, 2)
	assert.Equal(t, "JOHN PAUL MARTIN", rec.OfficeBearers[0].Name)
	assert.Equal(t, "MARIE CLAIRE MARTIN", rec.OfficeBearers[1].Name)
}

func TestExtractShareholderClasses(t *testing.T) {
	lines := []string{
		"Shareholders",
		"Name", "Address", "No. of Shares", "Currency", "Share Class",
		"MUR",
		"JOHN PAUL MARTIN",
		"ROYAL ROAD, CUREPIPE",
		"500",
		"ORDINARY",
		"MARIE CLAIRE MARTIN",
		"OLD MOKA ROAD, MOKA",
		"500",
		"PREFERENCE SHARES",
	}

	shareholders := extractShareholders(lines)
	require.Len(t, shareholders, 2)
	assert.Equal(t, "ORDINARY", shareholders[0].Class)
	assert.Equal(t, "PREFERENCE SHARES", shareholders[1].Class)
	assert.Equal(t, "MUR", shareholders[0].Currency)
}

func TestExtractShareholderClassBroadcast(t *testing.T) {
	// One class designation for the whole section applies to every row; no
	// designation leaves the class empty.
	lines := []string{
		"Shareholders",
		"MUR",
		"ORDINARY",
		"JOHN PAUL MARTIN",
		"ROYAL ROAD, CUREPIPE",
		"500",
		"MARIE CLAIRE MARTIN",
		"OLD MOKA ROAD, MOKA",
		"500",
	}

	shareholders := extractShareholders(lines)
	require.Len(t, shareholders, 2)
	assert.Equal(t, "ORDINARY", shareholders[0].Class)
	assert.Equal(t, "ORDINARY", shareholders[1].Class)

	bare := extractShareholders([]string{
		"Shareholders",
		"JOHN PAUL MARTIN", "ROYAL ROAD, CUREPIPE", "500",
	})
	require.Len(t, bare, 1)
	assert.Empty(t, bare[0].Class)
}

func TestExtractLifecycleDetailNotes(t *testing.T) {
	lines := []string{
		"Winding Up / Dissolved Details",
		"Event", "Date", "Remarks",
		"WOUND UP",
		"01/02/2024",
		"BY ORDER OF THE SUPREME COURT",
	}

	details := extractDetails(lines)
	require.Len(t, details, 1)
	assert.Equal(t, LifecycleDetail{
		Event: "WOUND UP", Date: "01/02/2024", Note: "BY ORDER OF THE SUPREME COURT",
	}, details[0])
}

func TestExtractObjectionReasons(t *testing.T) {
	lines := []string{
		"Objections",
		"Date Raised", "Raised By", "Reason",
		"05/03/2024",
		"COASTAL TRADERS LTD",
		"NAME SIMILARITY",
	}

	objections := extractObjections(lines)
	require.Len(t, objections, 1)
	assert.Equal(t, Objection{
		Raised: "05/03/2024", By: "COASTAL TRADERS LTD", Reason: "NAME SIMILARITY",
	}, objections[0])
}

func TestExtractUnsupportedShapeAborts(t *testing.T) {
	// A populated Liquidators section was never observed for global business
	// companies; the whole extraction must abort rather than drop the data.
	lines := []string{
		"Company Details",
		"Name", "EQUATOR CAPITAL PARTNERS",
		"File No", "GB2047",
		"Status", "Live",
		"Date Incorporated", "22/08/2019",
		"Liquidators",
		"PIERRE KOENIG",
		"16 FRERE FELIX DE VALOIS STREET, PORT LOUIS",
		"01/09/2024",
	}

	rec, err := Extract(lines, CategoryGlobal, "")
	assert.Nil(t, rec)

	var unsupported *UnsupportedShapeError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, SectionLiquidators, unsupported.Section)
	assert.Equal(t, CategoryGlobal, unsupported.Category)
}

func TestExtractUnknownCategoryAborts(t *testing.T) {
	_, err := Extract([]string{"Company Details", "Name", "X"}, Category("PARTNERSHIP"), "")
	var unsupported *UnsupportedShapeError
	require.ErrorAs(t, err, &unsupported)
}

func TestExtractUnknownDomesticNatureAborts(t *testing.T) {
	_, err := Extract([]string{"Company Details", "Name", "X"}, CategoryDomestic, Nature("COOPERATIVE"))
	var unsupported *UnsupportedShapeError
	require.ErrorAs(t, err, &unsupported)
}

func TestExtractMissingIdentityRejected(t *testing.T) {
	_, err := Extract([]string{"Office Bearers", "DIRECTOR"}, CategoryDomestic, NaturePrivate)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, SectionIdentity, parseErr.Section)
}
