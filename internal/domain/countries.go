package domain

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// iso3ByName maps the country names used in the source files to the map codes
// the choropleth understands. Aggregates such as the EU keep their Eurostat
// codes; the map simply has no shape for them.
var iso3ByName = map[string]string{
	"Argentina":                                     "ARG",
	"Australia":                                     "AUS",
	"Austria":                                       "AUT",
	"Belgium":                                       "BEL",
	"Bulgaria":                                      "BGR",
	"Brazil":                                        "BRA",
	"Canada":                                        "CAN",
	"Switzerland":                                   "CHE",
	"Chile":                                         "CHL",
	"China":                                         "CHN",
	"Colombia":                                      "COL",
	"Costa Rica":                                    "CRI",
	"Cyprus":                                        "CYP",
	"Czechia":                                       "CZE",
	"Germany":                                       "DEU",
	"Denmark":                                       "DNK",
	"Spain":                                         "ESP",
	"Estonia":                                       "EST",
	"European Union":                                "EU",
	"European Union (27 countries from 01/02/2020)": "EU27_2020",
	"European Union (28 countries)":                 "EU28",
	"Finland":                                       "FIN",
	"France":                                        "FRA",
	"United Kingdom":                                "GBR",
	"Greece":                                        "GRC",
	"Croatia":                                       "HRV",
	"Hungary":                                       "HUN",
	"Indonesia":                                     "IDN",
	"India":                                         "IND",
	"Ireland":                                       "IRL",
	"Iceland":                                       "ISL",
	"Israel":                                        "ISR",
	"Italy":                                         "ITA",
	"Japan":                                         "JPN",
	"Kazakhstan":                                    "KAZ",
	"Korea":                                         "KOR",
	"Lithuania":                                     "LTU",
	"Luxembourg":                                    "LUX",
	"Latvia":                                        "LVA",
	"Mexico":                                        "MEX",
	"Malta":                                         "MLT",
	"Netherlands":                                   "NLD",
	"Norway":                                        "NOR",
	"New Zealand":                                   "NZL",
	"Peru":                                          "PER",
	"Philippines":                                   "PHL",
	"Poland":                                        "POL",
	"Portugal":                                      "PRT",
	"Romania":                                       "ROU",
	"Russia":                                        "RUS",
	"Slovak Republic":                               "SVK",
	"Slovenia":                                      "SVN",
	"Sweden":                                        "SWE",
	"Turkey":                                        "TUR",
	"Ukraine":                                       "UKR",
	"United States":                                 "USA",
	"Viet Nam":                                      "VNM",
	"South Africa":                                  "ZAF",
}

// ResolveISO3 returns the map code for a country name. Names are compared after
// NFC normalization and whitespace trimming.
func ResolveISO3(name string) (string, bool) {
	code, ok := iso3ByName[norm.NFC.String(strings.TrimSpace(name))]
	return code, ok
}

// KnownCountries returns the number of names ResolveISO3 can resolve.
func KnownCountries() int { return len(iso3ByName) }
