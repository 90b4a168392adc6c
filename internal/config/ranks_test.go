package config_test

import (
	"context"
	"os"
	"testing"

	"github.com/coachdesk/ascend/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestLoadRankTable(t *testing.T) {
	convey.Convey("Given a rank table loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading a valid hierarchy override", func() {
			yamlContent := `
ranks:
  - code: COACH
    name: Coach
  - code: SC
    name: Senior Coach
    aliases: ["Senior Coach"]
    requirement:
      points: 3
  - code: MGR
    name: Manager
    requirement:
      points: 4
      tier1_teams: 1
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			ranks, err := config.LoadRankTable(ctx, tmpFile)

			convey.Convey("Then the ordered ranks come back with requirements", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(len(ranks), convey.ShouldEqual, 3)
				convey.So(ranks[0].Code, convey.ShouldEqual, "COACH")
				convey.So(ranks[0].Requirement, convey.ShouldBeNil)
				convey.So(ranks[1].Aliases, convey.ShouldContain, "Senior Coach")
				convey.So(ranks[2].Requirement.Points, convey.ShouldEqual, 4)
				convey.So(ranks[2].Requirement.Tier1Teams, convey.ShouldEqual, 1)
			})
		})

		convey.Convey("When the file defines no ranks", func() {
			tmpFile := createTempConfigFile("ranks: []\n")
			defer func() { _ = os.Remove(tmpFile) }()

			ranks, err := config.LoadRankTable(ctx, tmpFile)

			convey.Convey("Then the override is rejected", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(ranks, convey.ShouldBeNil)
			})
		})

		convey.Convey("When an entry lacks a code", func() {
			yamlContent := `
ranks:
  - name: Nameless
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			ranks, err := config.LoadRankTable(ctx, tmpFile)

			convey.Convey("Then the override is rejected", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(ranks, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the file does not exist", func() {
			ranks, err := config.LoadRankTable(ctx, "/non/existent/ranks.yaml")

			convey.Convey("Then the loader reports it", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(ranks, convey.ShouldBeNil)
			})
		})
	})
}
