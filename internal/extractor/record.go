package extractor

// Category is the registry's legal classification of a company. Together with
// Nature it selects the document template and therefore the extraction path.
type Category string

// Nature further divides Domestic companies.
type Nature string

const (
	CategoryDomestic      Category = "DOMESTIC"
	CategoryAuthorised    Category = "AUTHORISED COMPANY"
	CategoryGlobal        Category = "GLOBAL BUSINESS COMPANY"
	CategoryForeignBranch Category = "FOREIGN (DOM BRANCH)"
)

const (
	NaturePrivate    Nature = "PRIVATE"
	NatureCivil      Nature = "CIVIL"
	NatureCommercial Nature = "COMMERCIAL"
	NaturePublic     Nature = "PUBLIC"
)

// Section names used as the record's top-level keys. A nil collection on a
// Record means the section is not part of the category's shape; an empty
// collection means the section is supported but the document carried nothing.
const (
	SectionIdentity         = "company_details"
	SectionBusiness         = "business_details"
	SectionCertificates     = "certificates"
	SectionOfficeBearers    = "office_bearers"
	SectionShareholders     = "shareholders"
	SectionMembers          = "members"
	SectionAnnualReturns    = "annual_returns"
	SectionFinancialSummary = "financial_summaries"
	SectionProfitStatement  = "profit_statement"
	SectionStatedCapital    = "stated_capital"
	SectionBalanceSheet     = "balance_sheet"
	SectionCharges          = "charges"
	SectionLiquidators      = "liquidators"
	SectionReceivers        = "receivers"
	SectionAdministrators   = "administrators"
	SectionDetails          = "lifecycle_details"
	SectionObjections       = "objections"
)

// Identity holds the document's company identification block.
type Identity struct {
	Name          string `json:"name"`
	FileNumber    string `json:"file_number"`
	Category      string `json:"category"`
	Nature        string `json:"nature,omitempty"`
	Status        string `json:"status"`
	Incorporated  string `json:"incorporated"` // dd/mm/yyyy as printed
	CompanyNumber string `json:"company_number"`
	CompanyType   string `json:"company_type"`
}

// BusinessDetails describes the registered business activity.
type BusinessDetails struct {
	BusinessName string `json:"business_name"`
	BRN          string `json:"brn,omitempty"`
	Activity     string `json:"activity"`
	Address      string `json:"address"`
	Registered   string `json:"registered,omitempty"`
}

// Certificate is a registrar-issued certificate entry.
type Certificate struct {
	Name   string `json:"name"`
	Issued string `json:"issued"`
}

// OfficeBearer is a director, secretary, agent or equivalent role holder.
type OfficeBearer struct {
	Position  string `json:"position"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	Appointed string `json:"appointed"`
}

// Shareholder is one shareholding line.
type Shareholder struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Shares   int64  `json:"shares"`
	Currency string `json:"currency"`
	Class    string `json:"class,omitempty"`
}

// Member is a member of a company limited by guarantee.
type Member struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Joined  string `json:"joined,omitempty"`
}

// AnnualReturn is one filed annual return line.
type AnnualReturn struct {
	Year  int    `json:"year"`
	Filed string `json:"filed"`
}

// FinancialSummary is one filed financial-statement summary line.
type FinancialSummary struct {
	PeriodFrom string `json:"period_from"`
	PeriodTo   string `json:"period_to"`
	Currency   string `json:"currency"`
}

// ProfitStatement is the filed statement of profit or loss.
type ProfitStatement struct {
	Currency    string `json:"currency"`
	Turnover    int64  `json:"turnover"`
	GrossProfit int64  `json:"gross_profit"`
	NetProfit   int64  `json:"net_profit"`
}

// StatedCapitalEntry is one class line in the stated capital section.
type StatedCapitalEntry struct {
	Class        string `json:"class"`
	Currency     string `json:"currency"`
	SharesIssued int64  `json:"shares_issued"`
	Amount       int64  `json:"amount"`
}

// AccountItem is one labelled amount inside a balance-sheet group.
type AccountItem struct {
	Label  string `json:"label"`
	Amount int64  `json:"amount"`
}

// AccountGroup is a named group of balance-sheet items with a group total.
type AccountGroup struct {
	Label string        `json:"label"`
	Items []AccountItem `json:"items"`
	Total int64         `json:"total"`
}

// BalanceSheet is the filed balance sheet with nested asset/liability groups.
type BalanceSheet struct {
	Currency    string         `json:"currency"`
	Assets      []AccountGroup `json:"assets"`
	Liabilities []AccountGroup `json:"liabilities"`
}

// Charge is one registered charge line.
type Charge struct {
	Holder   string `json:"holder"`
	Kind     string `json:"kind"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Created  string `json:"created"`
}

// Appointee is a liquidator, receiver or administrator appointment.
type Appointee struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	Appointed string `json:"appointed"`
}

// LifecycleDetail is one lifecycle event line (winding up, dissolution, ...).
type LifecycleDetail struct {
	Event string `json:"event"`
	Date  string `json:"date"`
	Note  string `json:"note,omitempty"`
}

// Objection is one registered objection line.
type Objection struct {
	Raised string `json:"raised"`
	By     string `json:"by"`
	Reason string `json:"reason,omitempty"`
}

// Record is the category-shaped extraction result for one document.
// Pointer sections are present when non-nil; slice sections are part of the
// category's shape when non-nil, and empty when the document had no rows.
type Record struct {
	Identity        *Identity            `json:"company_details"`
	Business        *BusinessDetails     `json:"business_details,omitempty"`
	Certificates    []Certificate        `json:"certificates,omitempty"`
	OfficeBearers   []OfficeBearer       `json:"office_bearers,omitempty"`
	Shareholders    []Shareholder        `json:"shareholders,omitempty"`
	Members         []Member             `json:"members,omitempty"`
	AnnualReturns   []AnnualReturn       `json:"annual_returns,omitempty"`
	Financials      []FinancialSummary   `json:"financial_summaries,omitempty"`
	Profit          *ProfitStatement     `json:"profit_statement,omitempty"`
	StatedCapital   []StatedCapitalEntry `json:"stated_capital,omitempty"`
	Balance         *BalanceSheet        `json:"balance_sheet,omitempty"`
	Charges         []Charge             `json:"charges,omitempty"`
	Liquidators     []Appointee          `json:"liquidators,omitempty"`
	Receivers       []Appointee          `json:"receivers,omitempty"`
	Administrators  []Appointee          `json:"administrators,omitempty"`
	Details         []LifecycleDetail    `json:"lifecycle_details,omitempty"`
	Objections      []Objection          `json:"objections,omitempty"`
}

// Sections returns the record's present top-level keys in a fixed order.
// A section counts as present when the category's shape includes it, even if
// the document carried no rows for it.
func (r *Record) Sections() []string {
	var keys []string
	if r.Identity != nil {
		keys = append(keys, SectionIdentity)
	}
	if r.Business != nil {
		keys = append(keys, SectionBusiness)
	}
	if r.Certificates != nil {
		keys = append(keys, SectionCertificates)
	}
	if r.OfficeBearers != nil {
		keys = append(keys, SectionOfficeBearers)
	}
	if r.Shareholders != nil {
		keys = append(keys, SectionShareholders)
	}
	if r.Members != nil {
		keys = append(keys, SectionMembers)
	}
	if r.AnnualReturns != nil {
		keys = append(keys, SectionAnnualReturns)
	}
	if r.Financials != nil {
		keys = append(keys, SectionFinancialSummary)
	}
	if r.Profit != nil {
		keys = append(keys, SectionProfitStatement)
	}
	if r.StatedCapital != nil {
		keys = append(keys, SectionStatedCapital)
	}
	if r.Balance != nil {
		keys = append(keys, SectionBalanceSheet)
	}
	if r.Charges != nil {
		keys = append(keys, SectionCharges)
	}
	if r.Liquidators != nil {
		keys = append(keys, SectionLiquidators)
	}
	if r.Receivers != nil {
		keys = append(keys, SectionReceivers)
	}
	if r.Administrators != nil {
		keys = append(keys, SectionAdministrators)
	}
	if r.Details != nil {
		keys = append(keys, SectionDetails)
	}
	if r.Objections != nil {
		keys = append(keys, SectionObjections)
	}
	return keys
}
