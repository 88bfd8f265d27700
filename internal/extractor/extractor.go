// Package extractor turns the line-oriented text dump of one registry PDF
// document into a typed, category-shaped record. It is a pure function of
// (text, category, nature); the caller owns all persistence.
//
// The extractor recognizes one fixed set of document templates. Shapes that
// never occurred in the observed dataset are rejected with an
// UnsupportedShapeError rather than best-effort parsed: aborting loudly is
// the contract, silent data loss is not.
package extractor

import "strings"

// shapeFor returns the set of sections a category/nature combination is
// known to carry. A Domestic/Civil document without a business registration
// number is a société civile and drops the commercial sections.
func shapeFor(category Category, nature Nature, hasBRN bool) (map[string]bool, error) {
	switch category {
	case CategoryDomestic:
		switch nature {
		case NaturePrivate, NatureCommercial, NaturePublic:
			shape := set(
				SectionIdentity, SectionBusiness, SectionCertificates,
				SectionOfficeBearers, SectionShareholders, SectionAnnualReturns,
				SectionFinancialSummary, SectionProfitStatement, SectionStatedCapital,
				SectionBalanceSheet, SectionCharges, SectionLiquidators,
				SectionReceivers, SectionAdministrators, SectionDetails,
				SectionObjections,
			)
			if nature == NaturePublic {
				shape[SectionMembers] = true
			}
			return shape, nil
		case NatureCivil:
			if hasBRN {
				// Société commerciale: registered business plus holdings.
				return set(
					SectionIdentity, SectionBusiness, SectionOfficeBearers,
					SectionShareholders, SectionStatedCapital, SectionDetails,
					SectionObjections,
				), nil
			}
			// Société civile: no registered business activity.
			return set(
				SectionIdentity, SectionOfficeBearers, SectionMembers,
				SectionDetails, SectionObjections,
			), nil
		default:
			return nil, &UnsupportedShapeError{
				Category: category, Nature: nature,
				Section: "document", Detail: "nature not present in source templates",
			}
		}
	case CategoryAuthorised:
		return set(
			SectionIdentity, SectionOfficeBearers, SectionShareholders,
			SectionStatedCapital, SectionDetails, SectionObjections,
		), nil
	case CategoryGlobal:
		return set(
			SectionIdentity, SectionCertificates, SectionOfficeBearers,
			SectionShareholders, SectionStatedCapital, SectionFinancialSummary,
			SectionProfitStatement, SectionBalanceSheet, SectionCharges,
			SectionDetails, SectionObjections,
		), nil
	case CategoryForeignBranch:
		return set(
			SectionIdentity, SectionBusiness, SectionOfficeBearers,
			SectionCharges, SectionDetails, SectionObjections,
		), nil
	}
	return nil, &UnsupportedShapeError{
		Category: category, Nature: nature,
		Section: "document", Detail: "category not present in source templates",
	}
}

func set(keys ...string) map[string]bool {
	m := make(map[string]bool, len(keys))
	for _, k := range keys {
		m[k] = true
	}
	return m
}

// NormalizeCategory maps raw portal/category strings onto the known values.
func NormalizeCategory(raw string) Category {
	return Category(strings.ToUpper(strings.TrimSpace(raw)))
}

// NormalizeNature maps raw nature strings onto the known values.
func NormalizeNature(raw string) Nature {
	return Nature(strings.ToUpper(strings.TrimSpace(raw)))
}

// Extract assembles the category-shaped record for one document text dump.
// Sections outside the category's known shape that nevertheless carry rows
// cause an UnsupportedShapeError; the caller treats that as fatal.
func Extract(lines []string, category Category, nature Nature) (*Record, error) {
	category = NormalizeCategory(string(category))
	nature = NormalizeNature(string(nature))

	shape, err := shapeFor(category, nature, HasBRN(lines))
	if err != nil {
		return nil, err
	}

	// An out-of-shape section with content is a template we have never seen.
	for _, section := range sectionOrder {
		if shape[section] {
			continue
		}
		if body, ok := sliceSection(lines, section); ok && len(body) > 0 {
			return nil, &UnsupportedShapeError{
				Category: category,
				Nature:   nature,
				Section:  section,
				Detail:   "populated section never encountered for this category",
			}
		}
	}

	rec := &Record{}
	rec.Identity, err = extractIdentity(lines, category, nature)
	if err != nil {
		return nil, err
	}

	if shape[SectionBusiness] {
		rec.Business = extractBusiness(lines)
	}
	if shape[SectionCertificates] {
		rec.Certificates = extractCertificates(lines)
	}
	if shape[SectionOfficeBearers] {
		rec.OfficeBearers = extractOfficeBearers(lines)
	}
	if shape[SectionShareholders] {
		rec.Shareholders = extractShareholders(lines)
	}
	if shape[SectionMembers] {
		rec.Members = extractMembers(lines)
	}
	if shape[SectionAnnualReturns] {
		rec.AnnualReturns = extractAnnualReturns(lines)
	}
	if shape[SectionFinancialSummary] {
		rec.Financials = extractFinancials(lines)
	}
	if shape[SectionProfitStatement] {
		rec.Profit = extractProfit(lines)
	}
	if shape[SectionStatedCapital] {
		rec.StatedCapital = extractStatedCapital(lines)
	}
	if shape[SectionBalanceSheet] {
		rec.Balance = extractBalanceSheet(lines)
	}
	if shape[SectionCharges] {
		rec.Charges = extractCharges(lines)
	}
	if shape[SectionLiquidators] {
		rec.Liquidators = extractAppointees(lines, SectionLiquidators)
	}
	if shape[SectionReceivers] {
		rec.Receivers = extractAppointees(lines, SectionReceivers)
	}
	if shape[SectionAdministrators] {
		rec.Administrators = extractAppointees(lines, SectionAdministrators)
	}
	if shape[SectionDetails] {
		rec.Details = extractDetails(lines)
	}
	if shape[SectionObjections] {
		rec.Objections = extractObjections(lines)
	}

	return rec, nil
}
