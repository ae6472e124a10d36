// Package regiondata holds the static region tables shared by every provider
// backend: region-code to region-name translation and (country, region) to
// timezone translation.
//
// Region names are only maintained for the United States and Canada; that is
// all the upstream databases ever shipped, and the formatted-label heuristic
// in the geo package leans on exactly that coverage. Region names for every
// other country simply never resolve.
package regiondata

// usRegions maps US state/territory codes to names.
var usRegions = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas",
	"CA": "California", "CO": "Colorado", "CT": "Connecticut", "DE": "Delaware",
	"DC": "District of Columbia", "FL": "Florida", "GA": "Georgia",
	"HI": "Hawaii", "ID": "Idaho", "IL": "Illinois", "IN": "Indiana",
	"IA": "Iowa", "KS": "Kansas", "KY": "Kentucky", "LA": "Louisiana",
	"ME": "Maine", "MD": "Maryland", "MA": "Massachusetts", "MI": "Michigan",
	"MN": "Minnesota", "MS": "Mississippi", "MO": "Missouri", "MT": "Montana",
	"NE": "Nebraska", "NV": "Nevada", "NH": "New Hampshire", "NJ": "New Jersey",
	"NM": "New Mexico", "NY": "New York", "NC": "North Carolina",
	"ND": "North Dakota", "OH": "Ohio", "OK": "Oklahoma", "OR": "Oregon",
	"PA": "Pennsylvania", "RI": "Rhode Island", "SC": "South Carolina",
	"SD": "South Dakota", "TN": "Tennessee", "TX": "Texas", "UT": "Utah",
	"VT": "Vermont", "VA": "Virginia", "WA": "Washington",
	"WV": "West Virginia", "WI": "Wisconsin", "WY": "Wyoming",
	"PR": "Puerto Rico", "GU": "Guam", "VI": "U.S. Virgin Islands",
}

// caRegions maps Canadian province/territory codes to names.
var caRegions = map[string]string{
	"AB": "Alberta", "BC": "British Columbia", "MB": "Manitoba",
	"NB": "New Brunswick", "NL": "Newfoundland and Labrador",
	"NS": "Nova Scotia", "NT": "Northwest Territories", "NU": "Nunavut",
	"ON": "Ontario", "PE": "Prince Edward Island", "QC": "Quebec",
	"SK": "Saskatchewan", "YT": "Yukon",
}

// usTimezones maps US state codes to a representative IANA timezone. States
// spanning several zones get the zone of the bulk of their population.
var usTimezones = map[string]string{
	"AL": "America/Chicago", "AK": "America/Anchorage", "AZ": "America/Phoenix",
	"AR": "America/Chicago", "CA": "America/Los_Angeles", "CO": "America/Denver",
	"CT": "America/New_York", "DE": "America/New_York", "DC": "America/New_York",
	"FL": "America/New_York", "GA": "America/New_York", "HI": "Pacific/Honolulu",
	"ID": "America/Boise", "IL": "America/Chicago", "IN": "America/Indiana/Indianapolis",
	"IA": "America/Chicago", "KS": "America/Chicago", "KY": "America/New_York",
	"LA": "America/Chicago", "ME": "America/New_York", "MD": "America/New_York",
	"MA": "America/New_York", "MI": "America/Detroit", "MN": "America/Chicago",
	"MS": "America/Chicago", "MO": "America/Chicago", "MT": "America/Denver",
	"NE": "America/Chicago", "NV": "America/Los_Angeles", "NH": "America/New_York",
	"NJ": "America/New_York", "NM": "America/Denver", "NY": "America/New_York",
	"NC": "America/New_York", "ND": "America/Chicago", "OH": "America/New_York",
	"OK": "America/Chicago", "OR": "America/Los_Angeles", "PA": "America/New_York",
	"RI": "America/New_York", "SC": "America/New_York", "SD": "America/Chicago",
	"TN": "America/Chicago", "TX": "America/Chicago", "UT": "America/Denver",
	"VT": "America/New_York", "VA": "America/New_York", "WA": "America/Los_Angeles",
	"WV": "America/New_York", "WI": "America/Chicago", "WY": "America/Denver",
	"PR": "America/Puerto_Rico", "GU": "Pacific/Guam", "VI": "America/St_Thomas",
}

// caTimezones maps Canadian province codes to a representative IANA timezone.
var caTimezones = map[string]string{
	"AB": "America/Edmonton", "BC": "America/Vancouver", "MB": "America/Winnipeg",
	"NB": "America/Moncton", "NL": "America/St_Johns", "NS": "America/Halifax",
	"NT": "America/Yellowknife", "NU": "America/Iqaluit", "ON": "America/Toronto",
	"PE": "America/Halifax", "QC": "America/Toronto", "SK": "America/Regina",
	"YT": "America/Whitehorse",
}

// countryTimezones maps alpha-2 country codes to a country-wide default
// timezone, used when there is no per-region entry. Countries spanning many
// zones without region coverage (RU, BR, AU, ...) get their most populous
// zone.
var countryTimezones = map[string]string{
	"AR": "America/Argentina/Buenos_Aires", "AT": "Europe/Vienna",
	"AU": "Australia/Sydney", "BE": "Europe/Brussels", "BR": "America/Sao_Paulo",
	"CH": "Europe/Zurich", "CL": "America/Santiago", "CN": "Asia/Shanghai",
	"CO": "America/Bogota", "CZ": "Europe/Prague", "DE": "Europe/Berlin",
	"DK": "Europe/Copenhagen", "EG": "Africa/Cairo", "ES": "Europe/Madrid",
	"FI": "Europe/Helsinki", "FR": "Europe/Paris", "GB": "Europe/London",
	"GR": "Europe/Athens", "HK": "Asia/Hong_Kong", "HU": "Europe/Budapest",
	"ID": "Asia/Jakarta", "IE": "Europe/Dublin", "IL": "Asia/Jerusalem",
	"IN": "Asia/Kolkata", "IT": "Europe/Rome", "JP": "Asia/Tokyo",
	"KR": "Asia/Seoul", "MX": "America/Mexico_City", "MY": "Asia/Kuala_Lumpur",
	"NG": "Africa/Lagos", "NL": "Europe/Amsterdam", "NO": "Europe/Oslo",
	"NZ": "Pacific/Auckland", "PH": "Asia/Manila", "PL": "Europe/Warsaw",
	"PT": "Europe/Lisbon", "RO": "Europe/Bucharest", "RU": "Europe/Moscow",
	"SA": "Asia/Riyadh", "SE": "Europe/Stockholm", "SG": "Asia/Singapore",
	"TH": "Asia/Bangkok", "TR": "Europe/Istanbul", "TW": "Asia/Taipei",
	"UA": "Europe/Kyiv", "VN": "Asia/Ho_Chi_Minh", "ZA": "Africa/Johannesburg",
}

// RegionName translates a (alpha-2 country, region code) pair into a region
// name. The second return is false when the pair is not in the tables.
func RegionName(countryCode2, regionCode string) (string, bool) {
	switch countryCode2 {
	case "US":
		name, ok := usRegions[regionCode]
		return name, ok
	case "CA":
		name, ok := caRegions[regionCode]
		return name, ok
	}
	return "", false
}

// Timezone translates a (alpha-2 country, region code) pair into an IANA
// timezone name. Per-region entries win over the country default.
func Timezone(countryCode2, regionCode string) (string, bool) {
	switch countryCode2 {
	case "US":
		if tz, ok := usTimezones[regionCode]; ok {
			return tz, true
		}
		return "America/New_York", regionCode == ""
	case "CA":
		if tz, ok := caTimezones[regionCode]; ok {
			return tz, true
		}
		return "America/Toronto", regionCode == ""
	}
	tz, ok := countryTimezones[countryCode2]
	return tz, ok
}
