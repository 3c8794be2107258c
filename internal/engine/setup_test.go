package engine

import (
	"os"
	"testing"

	"dungeon-sim/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}
