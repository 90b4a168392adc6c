package rank

// defaultRanks is the shipped 14-rank hierarchy, lowest to highest. The
// entry rank carries no requirement; every promotion target does. Alias
// groups cover legacy codes still present in stored profiles.
func defaultRanks() []Rank {
	return []Rank{
		{Code: "Coach", Name: "Coach", Icon: "🌱"},
		{Code: "SC", Name: "Senior Coach", Icon: "⭐", Aliases: []string{"Senior Coach"},
			Requirement: &Requirement{Points: 3}},
		{Code: "MGR", Name: "Manager", Icon: "🔑", Aliases: []string{"Manager"},
			Requirement: &Requirement{Points: 4, Tier1Teams: 1}},
		{Code: "AD", Name: "Associate Director", Icon: "📈",
			Requirement: &Requirement{Points: 5, Tier1Teams: 1}},
		{Code: "DIR", Name: "Director", Icon: "🎯", Aliases: []string{"Director"},
			Requirement: &Requirement{Points: 6, Tier1Teams: 1}},
		{Code: "ED", Name: "Executive Director", Icon: "🏆",
			Requirement: &Requirement{Points: 8, Tier1Teams: 2}},
		{Code: "FIBC", Name: "Fully Integrated Business Coach", Icon: "💼", Aliases: []string{"Integrated"},
			Requirement: &Requirement{Points: 10, Tier1Teams: 2, Tier2Teams: 1}},
		{Code: "RD", Name: "Regional Director", Icon: "🗺️",
			Requirement: &Requirement{Points: 12, Tier1Teams: 3, Tier2Teams: 1}},
		{Code: "IRD", Name: "Integrated Regional Director", Icon: "🌐", Aliases: []string{"IND"},
			Requirement: &Requirement{Points: 15, Tier1Teams: 4, Tier2Teams: 2, Tier3Teams: 1}},
		{Code: "ND", Name: "National Director", Icon: "🏛️",
			Requirement: &Requirement{Points: 18, Tier1Teams: 5, Tier2Teams: 2, Tier3Teams: 1}},
		{Code: "GD", Name: "Global Director", Icon: "🌍",
			Requirement: &Requirement{Points: 21, Tier1Teams: 6, Tier2Teams: 3, Tier3Teams: 2}},
		{Code: "IGD", Name: "Integrated Global Director", Icon: "🚀",
			Requirement: &Requirement{Points: 24, Tier1Teams: 8, Tier2Teams: 4, Tier3Teams: 2}},
		{Code: "PD", Name: "Presidential Director", Icon: "👑",
			Requirement: &Requirement{Points: 27, Tier1Teams: 10, Tier2Teams: 5, Tier3Teams: 3}},
		{Code: "IPD", Name: "Integrated Presidential Director", Icon: "💎", Aliases: []string{"Presidential"},
			Requirement: &Requirement{Points: 30, Tier1Teams: 12, Tier2Teams: 6, Tier3Teams: 4}},
	}
}
