package consts

import "strings"

// Region is a coarse location a reporter can pick from the keyboard. Code is
// used as the report id prefix; regions without a code produce unprefixed ids.
type Region struct {
	Name string
	Code string
}

// Regions in keyboard display order.
var Regions = []Region{
	{Name: "Yangon", Code: "YGN"},
	{Name: "Mandalay", Code: "MDY"},
	{Name: "Sagaing", Code: "SGG"},
	{Name: "Naypyidaw", Code: "NPT"},
	{Name: "Bago", Code: "BGO"},
	{Name: "Shan", Code: "SHN"},
	{Name: "Magway", Code: "MGW"},
	{Name: "Other", Code: ""},
}

// RegionByName matches a typed or button-pressed region name, ignoring case.
func RegionByName(name string) (Region, bool) {
	name = strings.TrimSpace(name)
	for _, r := range Regions {
		if strings.EqualFold(r.Name, name) {
			return r, true
		}
	}
	return Region{}, false
}
