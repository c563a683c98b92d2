package scanner

import (
	"sort"
	"strings"
)

// Protocol is an IR protocol the bridge can be told to use.
type Protocol struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

var protocols = []Protocol{
	// Samsung
	{ID: "sam_legacy_1", Name: "Samsung Legacy (2008-2010)", Type: "NEC 38kHz"},
	{ID: "sam_plasma_a", Name: "Samsung Plasma Type A", Type: "NEC Discrete"},
	{ID: "sam_plasma_b", Name: "Samsung Plasma Type B", Type: "RC5 Extended"},
	{ID: "sam_lcd_2012", Name: "Samsung LCD Series 5/6", Type: "Samsung 38kHz"},
	{ID: "sam_smart_v1", Name: "Samsung Smart Gen 1", Type: "RF/IR Hybrid"},

	// Other major brands, older sets
	{ID: "sony_sirc_12", Name: "Sony Trinitron (Old)", Type: "SIRC 12-bit"},
	{ID: "sony_sirc_15", Name: "Sony Bravia (Legacy)", Type: "SIRC 15-bit"},
	{ID: "philips_rc5", Name: "Philips/Magnavox (CRT)", Type: "RC-5 Protocol"},
	{ID: "lg_goldstar", Name: "LG / Goldstar Legacy", Type: "NEC 38kHz Mod."},
	{ID: "panasonic_old", Name: "Panasonic Viera (Old)", Type: "Panasonic Pulse"},
	{ID: "thomson_rca", Name: "Thomson / RCA Legacy", Type: "Pulse Distance"},

	// Generic
	{ID: "gen_nec_00ff", Name: "Generic NEC (Code 00FF)", Type: "Standard NEC"},
	{ID: "univ_funai", Name: "Funai / Sanyo Generic", Type: "NEC Variant"},
	{ID: "univ_a", Name: "Universal Set A (Global)", Type: "Pulse Width"},
}

// Protocols returns the catalogue in scan order.
func Protocols() []Protocol {
	return append([]Protocol(nil), protocols...)
}

// FindProtocol looks a protocol up by ID.
func FindProtocol(id string) (Protocol, bool) {
	for _, p := range protocols {
		if p.ID == id {
			return p, true
		}
	}
	return Protocol{}, false
}

// Brand lists the universal-remote setup codes of a manufacturer.
type Brand struct {
	Name  string   `json:"name"`
	Codes []string `json:"codes"`
}

// Setup codes for four-digit universal remotes.
var brandCodes = map[string][]string{
	"Samsung":   {"0812", "2051", "0618", "0178", "0587", "0009", "0093", "2094", "1619", "0556", "1249", "0037", "0264", "0208", "0226"},
	"Sony":      {"1505", "1825", "1651", "0650", "0653", "0074", "0037", "0556", "0093", "0170"},
	"LG":        {"1423", "2182", "0178", "1663", "0037", "1305", "0556", "1721", "0009", "2057", "0714", "1539"},
	"Philips":   {"0037", "0556", "1506", "0605", "0178", "0108", "0343", "0009"},
	"Panasonic": {"0650", "1310", "1636", "0226", "0108", "1650", "0037", "0556", "0208", "0508"},
	"Toshiba":   {"1508", "0508", "0650", "0093", "0009", "0035", "0714", "0264", "0412", "0618"},
	"Sharp":     {"0093", "0009", "1193", "1659", "1393", "2214", "0650", "0653", "0412"},
	"Grundig":   {"0195", "0508", "1223", "0037", "2059", "2127", "0487", "0556", "0587", "1037"},
	"Hitachi":   {"1576", "0178", "0009", "0481", "0578", "0719", "2207", "0225", "0108", "0744"},
	"Hisense":   {"1363", "0208", "0009", "0508", "0753", "0698", "0891", "0860", "0780", "1208"},
	"TCL":       {"1916", "0625", "0412", "0698", "0706"},
	"Thomson":   {"0560", "0625", "0109", "0343", "0287", "0753", "0335", "0037", "0556", "1588"},
	"JVC":       {"0653", "0606", "1653", "0371", "0508", "0093", "0650"},
	"Pioneer":   {"1260", "1457", "0679", "0698", "0109", "0170", "0037", "0287", "0556", "0343"},
}

// Brands returns the brands whose name contains term, ignoring case,
// sorted by name. An empty term returns every brand.
func Brands(term string) []Brand {
	term = strings.ToLower(strings.TrimSpace(term))

	out := []Brand{}
	for name, codes := range brandCodes {
		if term != "" && !strings.Contains(strings.ToLower(name), term) {
			continue
		}
		out = append(out, Brand{Name: name, Codes: append([]string(nil), codes...)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
