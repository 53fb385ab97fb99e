package domain

import (
	"fmt"
	"strings"
)

// SheetType identifies one of the logical report types published in the
// daily BVRD consolidated bulletin. The value is the requested sheet name,
// including the "BB_" prefix used by the downstream database tables; the
// on-file sheet name may or may not carry that prefix.
type SheetType string

const (
	SheetResumenGeneralMercado         SheetType = "BB_ResumenGeneralMercado"
	SheetRFVTransPuestoBolsaMP         SheetType = "BB_RFVTransPuestoBolsaMP"
	SheetRFMPOperDia                   SheetType = "BB_RFMPOperDia"
	SheetRFMPOperDiaFirme              SheetType = "BB_RFMPOperDiaFirme"
	SheetRFMSOperDia                   SheetType = "BB_RFMSOperDia"
	SheetRFMSOperPlazos                SheetType = "BB_RFMSOperPlazos"
	SheetRentaFijaOperacionesFuturasA  SheetType = "BB_RentaFijaOperacionesFuturasA"
	SheetRFEmisionesCorpV              SheetType = "BB_RFEmisionesCorpV"
)

// SheetNamePrefix is the constant prefix that on-file sheet names sometimes
// drop. Resolution must accept both spellings.
const SheetNamePrefix = "BB_"

// AllSheetTypes lists every report type the pipeline knows how to extract.
func AllSheetTypes() []SheetType {
	return []SheetType{
		SheetResumenGeneralMercado,
		SheetRFVTransPuestoBolsaMP,
		SheetRFMPOperDia,
		SheetRFMPOperDiaFirme,
		SheetRFMSOperDia,
		SheetRFMSOperPlazos,
		SheetRentaFijaOperacionesFuturasA,
		SheetRFEmisionesCorpV,
	}
}

// RequestedName returns the logical sheet name as requested from a workbook.
func (s SheetType) RequestedName() string {
	return string(s)
}

// BaseName returns the sheet name without the fixed prefix.
func (s SheetType) BaseName() string {
	return strings.TrimPrefix(string(s), SheetNamePrefix)
}

// ParseSheetType resolves a requested name (with or without the prefix) to a
// known SheetType.
func ParseSheetType(name string) (SheetType, error) {
	trimmed := strings.TrimSpace(name)
	for _, s := range AllSheetTypes() {
		if trimmed == string(s) || trimmed == s.BaseName() {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown sheet type: %q", name)
}
