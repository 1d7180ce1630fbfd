package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/queuesmart/queuesmart/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	Convey("Given no file or environment overrides", t, func() {
		os.Unsetenv("QSMART_CONFIG")
		cfg, err := config.Load(context.Background())

		Convey("Then the defaults apply", func() {
			So(err, ShouldBeNil)
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.Addr, ShouldEqual, ":8080")
			So(cfg.ModelPath, ShouldEqual, "models/wait_time_model.json")
			So(cfg.DataDir, ShouldEqual, "data")
			So(cfg.Seed, ShouldEqual, 42)
			So(cfg.TrainingDays, ShouldEqual, 60)
			So(cfg.TestFraction, ShouldEqual, 0.2)
		})
	})
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("QSMART_ADDR", ":9090")
	t.Setenv("QSMART_MODEL_PATH", "/srv/models/current.json")
	t.Setenv("QSMART_TRAINING_DAYS", "30")
	t.Setenv("QSMART_LOG_LEVEL", "debug")

	Convey("Given environment overrides", t, func() {
		cfg, err := config.Load(context.Background())

		Convey("Then they beat the defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":9090")
			So(cfg.ModelPath, ShouldEqual, "/srv/models/current.json")
			So(cfg.TrainingDays, ShouldEqual, 30)
			So(cfg.LogLevel, ShouldEqual, "debug")
		})

		Convey("Then untouched fields keep their defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.Seed, ShouldEqual, 42)
			So(cfg.TestFraction, ShouldEqual, 0.2)
		})
	})
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "addr: \":7070\"\ntraining_days: 90\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("QSMART_CONFIG", path)

	Convey("Given a YAML config file", t, func() {
		cfg, err := config.Load(context.Background())

		Convey("Then file values beat the defaults", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":7070")
			So(cfg.TrainingDays, ShouldEqual, 90)
			So(cfg.ModelPath, ShouldEqual, "models/wait_time_model.json")
		})
	})
}

func TestLoadEnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("addr: \":7070\"\n"), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("QSMART_CONFIG", path)
	t.Setenv("QSMART_ADDR", ":6060")

	Convey("Given both a file and an environment override", t, func() {
		cfg, err := config.Load(context.Background())

		Convey("Then the environment wins", func() {
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":6060")
		})
	})
}

func TestLoadMissingConfigFile(t *testing.T) {
	t.Setenv("QSMART_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

	Convey("Given a config path that does not exist", t, func() {
		_, err := config.Load(context.Background())

		Convey("Then loading fails with the load error", func() {
			So(errors.Is(err, config.ErrLoadConfig), ShouldBeTrue)
		})
	})
}

func TestLoadValidation(t *testing.T) {
	Convey("Given a non-positive training span", t, func() {
		t.Setenv("QSMART_TRAINING_DAYS", "0")
		_, err := config.Load(context.Background())

		Convey("Then validation rejects it", func() {
			So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "training_days")
		})
	})
}

func TestLoadTestFractionBounds(t *testing.T) {
	Convey("Given an out-of-range test fraction", t, func() {
		t.Setenv("QSMART_TEST_FRACTION", "1.5")
		_, err := config.Load(context.Background())

		Convey("Then validation rejects it", func() {
			So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "test_fraction")
		})
	})
}
