package config_test

import (
	"context"
	"testing"

	"github.com/coachdesk/ascend/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.StoreBackend, convey.ShouldEqual, "memory")
			convey.So(cfg.ClientsPerPoint, convey.ShouldEqual, 4)
			convey.So(cfg.MaxActivityLimit, convey.ShouldEqual, 50)
			convey.So(cfg.DedupeSize, convey.ShouldEqual, 10_000)
			convey.So(cfg.RankTablePath, convey.ShouldBeEmpty)
		})
	})
}
