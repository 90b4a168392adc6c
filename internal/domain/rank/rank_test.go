package rank_test

import (
	"testing"

	"github.com/coachdesk/ascend/internal/domain/rank"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTable_Compare(t *testing.T) {
	Convey("Given the default rank table", t, func() {
		table := rank.NewTable()

		Convey("Then every canonical rank compares equal to itself", func() {
			for _, r := range table.Ranks() {
				So(table.Compare(r.Code, r.Code), ShouldEqual, 0)
			}
		})

		Convey("Then alias pairs compare as equal position", func() {
			So(table.Compare("IRD", "IND"), ShouldEqual, 0)
			So(table.Compare("IND", "IRD"), ShouldEqual, 0)
			So(table.Compare("IPD", "Presidential"), ShouldEqual, 0)
			So(table.Compare("SC", "Senior Coach"), ShouldEqual, 0)
		})

		Convey("Then higher ranks compare greater than lower ranks", func() {
			So(table.Compare("ED", "SC"), ShouldBeGreaterThan, 0)
			So(table.Compare("SC", "ED"), ShouldBeLessThan, 0)
			So(table.Compare("IPD", "Coach"), ShouldBeGreaterThan, 0)
		})

		Convey("Then the order is transitive across the whole table", func() {
			ranks := table.Ranks()
			for i := 0; i < len(ranks); i++ {
				for j := i + 1; j < len(ranks); j++ {
					for k := j + 1; k < len(ranks); k++ {
						So(table.Compare(ranks[k].Code, ranks[j].Code), ShouldBeGreaterThan, 0)
						So(table.Compare(ranks[j].Code, ranks[i].Code), ShouldBeGreaterThan, 0)
						So(table.Compare(ranks[k].Code, ranks[i].Code), ShouldBeGreaterThan, 0)
					}
				}
			}
		})

		Convey("When a rank string does not resolve", func() {
			Convey("Then it gets the unknown position", func() {
				So(table.Position("nonsense"), ShouldEqual, rank.UnknownPosition)
				So(table.Position(""), ShouldEqual, rank.UnknownPosition)
			})

			Convey("Then it compares below every known rank", func() {
				So(table.Compare("nonsense", "Coach"), ShouldBeLessThan, 0)
			})
		})

		Convey("Then resolution ignores case and whitespace", func() {
			So(table.Compare("  ed ", "ED"), ShouldEqual, 0)
			So(table.Compare("ipd", "IPD"), ShouldEqual, 0)
		})
	})
}

func TestTable_Meets(t *testing.T) {
	Convey("Given the default rank table", t, func() {
		table := rank.NewTable()

		Convey("When the required rank is empty", func() {
			Convey("Then every user rank passes, including unknown ones", func() {
				So(table.Meets("ED", ""), ShouldBeTrue)
				So(table.Meets("nonsense", ""), ShouldBeTrue)
				So(table.Meets("", ""), ShouldBeTrue)
			})
		})

		Convey("When the required rank is unknown", func() {
			Convey("Then it gates nothing", func() {
				So(table.Meets("Coach", "made-up-rank"), ShouldBeTrue)
			})
		})

		Convey("When the user rank is empty or unknown and the requirement is real", func() {
			Convey("Then nothing passes", func() {
				So(table.Meets("", "SC"), ShouldBeFalse)
				So(table.Meets("garbage", "SC"), ShouldBeFalse)
			})
		})

		Convey("When both ranks resolve", func() {
			Convey("Then equal or higher position passes", func() {
				So(table.Meets("ED", "ED"), ShouldBeTrue)
				So(table.Meets("ED", "SC"), ShouldBeTrue)
				So(table.Meets("SC", "ED"), ShouldBeFalse)
			})

			Convey("And alias pairs satisfy each other both ways", func() {
				So(table.Meets("IRD", "IND"), ShouldBeTrue)
				So(table.Meets("IND", "IRD"), ShouldBeTrue)
				So(table.Meets("Presidential", "IPD"), ShouldBeTrue)
				So(table.Meets("IPD", "Presidential"), ShouldBeTrue)
			})
		})
	})
}

func TestTable_Next(t *testing.T) {
	Convey("Given the default rank table", t, func() {
		table := rank.NewTable()

		Convey("When asking for the rank above the entry rank", func() {
			next, ok := table.Next("Coach")

			Convey("Then it is the first rank with a requirement", func() {
				So(ok, ShouldBeTrue)
				So(next.Code, ShouldEqual, "SC")
				So(next.Requirement, ShouldNotBeNil)
			})
		})

		Convey("When the current rank is unknown", func() {
			next, ok := table.Next("whatever")

			Convey("Then the scan starts at the bottom of the table", func() {
				So(ok, ShouldBeTrue)
				So(next.Code, ShouldEqual, "SC")
			})
		})

		Convey("When the current rank tops the table", func() {
			_, ok := table.Next("IPD")

			Convey("Then there is no next rank", func() {
				So(ok, ShouldBeFalse)
			})
		})
	})
}

func TestTable_WithRanks(t *testing.T) {
	Convey("Given a table built from a substituted hierarchy", t, func() {
		table := rank.NewTable(rank.WithRanks([]rank.Rank{
			{Code: "Bronze", Name: "Bronze"},
			{Code: "Silver", Name: "Silver", Aliases: []string{"AG"},
				Requirement: &rank.Requirement{Points: 2}},
			{Code: "Gold", Name: "Gold",
				Requirement: &rank.Requirement{Points: 4, Tier1Teams: 1}},
		}))

		Convey("Then lookups follow the substituted order", func() {
			So(table.Len(), ShouldEqual, 3)
			So(table.Compare("Gold", "Bronze"), ShouldBeGreaterThan, 0)
			So(table.Compare("AG", "Silver"), ShouldEqual, 0)
		})

		Convey("Then default ranks are not visible", func() {
			So(table.Position("ED"), ShouldEqual, rank.UnknownPosition)
		})
	})
}
